package anchor

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/miromero13/certeth/pkg/logger"
	"github.com/miromero13/certeth/pkg/rabbitmq"
	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/model"
)

const AnchorConsumerAlias = "ChainAnchorConsumer"

type storageData struct {
	Signature solana.Signature
	Account   solana.PublicKey
}

// Worker consumes verification outcomes and anchors the accepted ones on
// Solana. Rejected outcomes are skipped; the audit table already records them.
type Worker struct {
	Config    *SharedSolanaConfig
	RpcClient *rpc.Client
	Consumer  rabbitmq.IRabbitmqConsumer
}

func NewWorker(rpcEndpoint string) *Worker {
	solanaConfig, err := LoadSolanaKeys()
	if err != nil {
		logger.Default().Panicf(err, "Error when loading solana keys")
	}

	return &Worker{
		Config:    solanaConfig,
		RpcClient: rpc.New(rpcEndpoint),
		Consumer:  rabbitmq.GetConsumer(AnchorConsumerAlias),
	}
}

func (w *Worker) GetServiceName() string {
	return AnchorConsumerAlias
}

func (w *Worker) StartService() {
	anchorLogger := logger.Default()

	w.Consumer.StartConsuming(func(d amqp.Delivery) {
		var outcome model.VerificationOutcome
		if err := json.Unmarshal(d.Body, &outcome); err != nil {
			anchorLogger.Errorf(reasoncodes.Wrap(reasoncodes.ErrUnmarshal, err), "Failed to unmarshal verification outcome")
			return
		}

		if !outcome.IsValid {
			anchorLogger.Debugf("Skipping rejected verification %s", outcome.VerificationId)
			return
		}

		data, err := NewChainRecord(outcome).SerializeBorsh()
		if err != nil {
			anchorLogger.Errorf(err, "Failed to serialize chain record for %s", outcome.VerificationId)
			return
		}

		sigCh := make(chan storageData)
		errCh := make(chan error)

		go w.createAndPopulateAccount(data, errCh, sigCh)

		select {
		case stored := <-sigCh:
			anchorLogger.Infof("Anchored verification %s: signature=%s account=%s",
				outcome.VerificationId, stored.Signature.String(), stored.Account.String())
		case err := <-errCh:
			anchorLogger.Errorf(reasoncodes.Wrap(reasoncodes.ErrSolana, err),
				"Unable to anchor verification %s", outcome.VerificationId)
		}
	})
}

// createAndPopulateAccount creates a fresh rent-exempt account owned by the
// anchor program and writes the record in the same transaction.
func (w *Worker) createAndPopulateAccount(data []byte, errCh chan error, sigCh chan storageData) {
	anchorLogger := logger.Default()

	space := requiredAccountSpace(data)
	rent, err := w.RpcClient.GetMinimumBalanceForRentExemption(
		context.Background(),
		space,
		rpc.CommitmentFinalized,
	)
	if err != nil {
		errCh <- err
		return
	}

	newAccount, err := solana.NewRandomPrivateKey()
	if err != nil {
		errCh <- err
		return
	}

	w.Config.Mu.Lock()

	createAccountInstruction := system.NewCreateAccountInstruction(
		rent,
		space,
		w.Config.Keys.ProgramPublicKey, // owner = program
		w.Config.Keys.PayerPublicKey,   // payer
		newAccount.PublicKey(),
	).Build()

	accounts := []*solana.AccountMeta{
		solana.NewAccountMeta(newAccount.PublicKey(), false, true),
		solana.NewAccountMeta(w.Config.Keys.PayerPublicKey, true, true),
	}

	writeInstruction := solana.NewInstruction(
		w.Config.Keys.ProgramPublicKey,
		accounts,
		data,
	)

	w.Config.Mu.Unlock()

	latest, err := w.RpcClient.GetLatestBlockhash(context.Background(), rpc.CommitmentFinalized)
	if err != nil {
		errCh <- err
		return
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{createAccountInstruction, writeInstruction},
		latest.Value.Blockhash,
		solana.TransactionPayer(w.Config.Keys.PayerPublicKey),
	)
	if err != nil {
		errCh <- err
		return
	}

	_, err = tx.Sign(func(pk solana.PublicKey) *solana.PrivateKey {
		if pk.Equals(w.Config.Keys.PayerPublicKey) {
			return &w.Config.Keys.PayerPrivateKey
		}
		if pk.Equals(newAccount.PublicKey()) {
			return &newAccount
		}
		return nil
	})
	if err != nil {
		errCh <- err
		return
	}

	signature, err := w.RpcClient.SendTransactionWithOpts(
		context.Background(),
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		anchorLogger.Errorf(err, "Failed to send anchor transaction")
		anchorLogger.Debugf("Record size: %d bytes, allocated space: %d bytes", len(data), space)
		errCh <- err
		return
	}

	sigCh <- storageData{
		Signature: signature,
		Account:   newAccount.PublicKey(),
	}
}

// requiredAccountSpace pads the record so it fits with account metadata,
// rounded to 8 bytes with a 1 KiB floor.
func requiredAccountSpace(data []byte) uint64 {
	totalSize := len(data) + 512

	if totalSize%8 != 0 {
		totalSize += 8 - (totalSize % 8)
	}
	if totalSize < 1024 {
		totalSize = 1024
	}
	return uint64(totalSize)
}
