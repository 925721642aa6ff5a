package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsbedrockruntime "github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awscomprehend "github.com/aws/aws-sdk-go-v2/service/comprehend"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"

	"chat-processor/handler"
	"chat-processor/internal/integrations/bedrock"
	"chat-processor/internal/integrations/comprehend"
	"chat-processor/internal/integrations/langdetect"
	"chat-processor/internal/integrations/paramstore"
	"chat-processor/internal/integrations/translate"
	"chat-processor/internal/repository"
	"chat-processor/internal/usecase"
)

const defaultPreferencesTable = "connect-chat-language-preferences"

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	prefsTable := envStr("PREFERENCES_TABLE", defaultPreferencesTable)
	modelID := envStr("BEDROCK_MODEL_ID", usecase.DefaultModelID)
	paramPrefix := os.Getenv("PARAM_PREFIX") // optional; enables SSM overrides
	detectorKind := envStr("DETECTOR", "comprehend")

	logger := slog.Default()

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	completionClient, err := bedrock.New(awsbedrockruntime.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create bedrock client", "err", err)
		os.Exit(1)
	}
	prefsClient, err := repository.New(awsdynamodb.NewFromConfig(cfg), prefsTable)
	if err != nil {
		slog.Error("failed to create preference store client", "err", err)
		os.Exit(1)
	}
	translateClient, err := translate.New(awstranslate.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create translate client", "err", err)
		os.Exit(1)
	}

	var detector usecase.Detector
	switch detectorKind {
	case "local":
		detector = langdetect.New()
	default:
		detector, err = comprehend.New(awscomprehend.NewFromConfig(cfg))
		if err != nil {
			slog.Error("failed to create comprehend client", "err", err)
			os.Exit(1)
		}
	}

	var params usecase.ParamGetter
	if paramPrefix != "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		params = ssmClient
	}

	// ---- Pipeline ----
	runtimeParams := usecase.NewRuntimeParams(params, paramPrefix, modelID, logger)
	corrector, err := usecase.NewCorrector(completionClient, runtimeParams, logger)
	if err != nil {
		slog.Error("failed to create corrector", "err", err)
		os.Exit(1)
	}
	pipeline, err := usecase.NewPipeline(corrector, detector, translateClient, prefsClient, logger)
	if err != nil {
		slog.Error("failed to create pipeline", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(pipeline, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func envStr(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
