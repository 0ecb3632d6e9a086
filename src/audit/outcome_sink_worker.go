package audit

import (
	"encoding/json"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/miromero13/certeth/pkg/logger"
	"github.com/miromero13/certeth/pkg/rabbitmq"
	"github.com/miromero13/certeth/src/model"
)

const OutcomeConsumerAlias = "VerificationOutcomeConsumer"

// OutcomeSinkWorker records verification outcomes from the broker in the audit
// trail.
type OutcomeSinkWorker struct {
	service  *Service
	consumer rabbitmq.IRabbitmqConsumer
	logger   *logger.Logger
}

func NewOutcomeSinkWorker(service *Service) *OutcomeSinkWorker {
	return &OutcomeSinkWorker{
		service:  service,
		consumer: rabbitmq.GetConsumer(rabbitmq.ConsumerAlias(OutcomeConsumerAlias)),
		logger:   logger.New().WithOutput(os.Stdout),
	}
}

func (w *OutcomeSinkWorker) GetServiceName() string {
	return OutcomeConsumerAlias
}

func (w *OutcomeSinkWorker) StartService() {
	w.logger.Info("Starting verification outcome sink worker")

	w.consumer.StartConsuming(func(d amqp.Delivery) {
		var outcome model.VerificationOutcome

		if err := json.Unmarshal(d.Body, &outcome); err != nil {
			w.logger.Errorf(err, "Failed to unmarshal verification outcome")
			return
		}

		if err := w.service.ProcessOutcome(outcome); err != nil {
			w.logger.Errorf(err, "Failed to record verification outcome %s", outcome.VerificationId)
		}
	})
}
