package audit

import (
	"encoding/json"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/miromero13/certeth/pkg/logger"
	"github.com/miromero13/certeth/pkg/rabbitmq"
	logger_message "github.com/miromero13/certeth/pkg/utilities/logger"
)

const LogConsumerAlias = "LogConsumer"

// LogSinkWorker drains the log queue into the audit table. It uses a dedicated
// logger without a broker sink so its own lines cannot loop back through the
// queue.
type LogSinkWorker struct {
	service  *Service
	consumer rabbitmq.IRabbitmqConsumer
	logger   *logger.Logger
}

func NewLogSinkWorker(service *Service) *LogSinkWorker {
	return &LogSinkWorker{
		service:  service,
		consumer: rabbitmq.GetConsumer(rabbitmq.ConsumerAlias(LogConsumerAlias)),
		logger:   logger.New().WithOutput(os.Stdout),
	}
}

func (w *LogSinkWorker) GetServiceName() string {
	return LogConsumerAlias
}

func (w *LogSinkWorker) StartService() {
	w.logger.Info("Starting log sink worker")

	w.consumer.StartConsuming(func(d amqp.Delivery) {
		var logMessage logger_message.LoggerMessage

		if err := json.Unmarshal(d.Body, &logMessage); err != nil {
			w.logger.Errorf(err, "Failed to unmarshal log message")
			return
		}

		if err := w.service.ProcessLogMessage(logMessage); err != nil {
			w.logger.Errorf(err, "Failed to save log message")
		}
	})
}
