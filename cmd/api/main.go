package main

import (
	"os"

	appbuilder "github.com/miromero13/certeth/pkg/app_builder"
	"github.com/miromero13/certeth/pkg/logger"
	"github.com/miromero13/certeth/pkg/rabbitmq"
	"github.com/miromero13/certeth/pkg/rest"
	"github.com/miromero13/certeth/src/anchor"
	"github.com/miromero13/certeth/src/attestation"
	"github.com/miromero13/certeth/src/audit"
	"github.com/miromero13/certeth/src/certificate"
	"github.com/miromero13/certeth/src/database"
	"github.com/miromero13/certeth/src/institution"
	"github.com/miromero13/certeth/src/reputation"
	"github.com/miromero13/certeth/src/verification"
	"github.com/miromero13/certeth/src/zkproof"
)

func main() {
	var (
		certificateHandler  *certificate.Handler
		proofHandler        *zkproof.Handler
		verificationHandler *verification.Handler
		reputationHandler   *reputation.Handler
		auditHandler        *audit.Handler

		verificationService *verification.Service
		auditService        *audit.Service
	)

	builder := appbuilder.New[ApiConfigJson, ApiConfig]().
		InitLogger(logger.GlobalLoggerConfig{}).
		ResolveEnvironment().
		LoadConfig("config.json").
		WithOption(func(a *appbuilder.AppBuilder[ApiConfigJson, ApiConfig]) {
			// ----- DATABASE + MIGRATIONS -----
			db := database.ConnectToDatabase(a.Config().GetDatabaseConfig())
			database.RunMigrations(db)

			// ----- DOMAIN SERVICES -----
			institutionService := institution.NewService(institution.NewRepository(db))
			attestationService := attestation.NewService(attestation.NewRepository(db))
			certificateService := certificate.NewService(
				certificate.NewRepository(db),
				institutionService,
				attestationService,
			)
			reputationService := reputation.NewService(reputation.NewRepository(db))

			proofSystem := zkproof.NewSystem()
			proofService := zkproof.NewService(proofSystem, certificateService)

			// Outcome publisher is attached after the broker connects.
			verificationService = verification.NewService(
				proofSystem,
				certificateService,
				attestationService,
				reputationService,
				verification.NewRepository(db),
				nil,
			)

			auditService = audit.NewService(audit.NewRepository(db))

			certificateHandler = certificate.NewHandler(certificateService)
			proofHandler = zkproof.NewHandler(proofService)
			verificationHandler = verification.NewHandler(verificationService)
			reputationHandler = reputation.NewHandler(reputationService)
			auditHandler = audit.NewHandler(auditService)
		}).

		// ----- RABBITMQ -----
		InitRabbitmqConnection().
		InitRabbitmqRegistries().
		WithOption(func(a *appbuilder.AppBuilder[ApiConfigJson, ApiConfig]) {
			// ----- RABBITMQ LOGGING SINK -----
			logPublisher := rabbitmq.GetPublisher("LogPublisher")
			logSink := rabbitmq.CreateRabbitmqLoggerSink(logPublisher)
			logger.AddSinkToLoggerInstance(logger.Default(), logSink)

			// ----- VERIFICATION OUTCOME FANOUT -----
			verificationService.Outcomes = rabbitmq.GetPublisher(verification.OutcomePublisherAlias)
		})

	// ----- WORKERS -----
	workers := []rabbitmq.WorkerService{
		audit.NewLogSinkWorker(auditService),
		audit.NewOutcomeSinkWorker(auditService),
	}
	if os.Getenv("ANCHOR_PROGRAM_ID") != "" {
		rpcEndpoint := os.Getenv("SOLANA_RPC_ENDPOINT")
		if rpcEndpoint == "" {
			rpcEndpoint = "http://127.0.0.1:8899"
		}
		workers = append(workers, anchor.NewWorker(rpcEndpoint))
	}

	builder.
		AddWorkerServices(workers...).

		// ----- MIDDLEWARE -----
		AddGinMiddleware(
			rest.NewMiddleware("*", rest.CORSMiddleware()),
		).

		// ----- ROUTES -----
		AddGinRoutes(
			// Certificate store
			rest.NewRoute(rest.POST, "v1", "certificates", certificateHandler.Issue),
			rest.NewRoute(rest.GET, "v1", "certificates/count", certificateHandler.Count),
			rest.NewRoute(rest.GET, "v1", "certificates/:id", certificateHandler.Get),
			rest.NewRoute(rest.POST, "v1", "certificates/:id/revoke", certificateHandler.Revoke),
			rest.NewRoute(rest.POST, "v1", "certificates/:id/verify", certificateHandler.VerifyDirect),
			rest.NewRoute(rest.GET, "v1", "certificates/issuer/:address", certificateHandler.ListByIssuer),
			rest.NewRoute(rest.GET, "v1", "certificates/recipient/:address", certificateHandler.ListByRecipient),

			// Threshold proofs
			rest.NewRoute(rest.POST, "v1", "proofs/generate", proofHandler.Generate),
			rest.NewRoute(rest.POST, "v1", "proofs/verify", verificationHandler.VerifyProof),

			// Verification records
			rest.NewRoute(rest.GET, "v1", "verifications/:id", verificationHandler.Get),
			rest.NewRoute(rest.GET, "v1", "verifications/verifier/:address", verificationHandler.ByVerifier),
			rest.NewRoute(rest.GET, "v1", "certificates/:id/verifications", verificationHandler.History),
			rest.NewRoute(rest.POST, "v1", "certificates/:id/verifications", verificationHandler.VerifyCertificate),

			// Issuer reputation
			rest.NewRoute(rest.GET, "v1", "issuers/:address/reputation", reputationHandler.Get),

			// Audit log
			rest.NewRoute(rest.GET, "v1", "logs", auditHandler.GetLogEntries),
			rest.NewRoute(rest.GET, "v1", "logs/service/:service", auditHandler.GetLogEntriesByService),
			rest.NewRoute(rest.GET, "v1", "logs/level/:level", auditHandler.GetLogEntriesByLevel),
		).
		InitGinRouter().
		Build().
		Start()
}
