package models

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/logger"
)

// BedrockProvider handles vendor-namespaced model ids served by Amazon Bedrock.
// Credentials come from the AWS default chain; only the region is configured here.
type BedrockProvider struct {
	region  string
	verbose bool
	mu      sync.Mutex
}

// NewBedrockProvider creates a new Bedrock provider instance
func NewBedrockProvider() *BedrockProvider {
	return &BedrockProvider{}
}

// Name returns the provider name
func (b *BedrockProvider) Name() string {
	return "bedrock"
}

// debugf prints debug information if verbose mode is enabled (thread-safe)
func (b *BedrockProvider) debugf(format string, args ...interface{}) {
	if b.verbose {
		b.mu.Lock()
		defer b.mu.Unlock()
		logger.Logger.Debugf("[Bedrock] "+format, args...)
	}
}

// SupportsModel checks for a Bedrock model id such as anthropic.claude-3-haiku-20240307-v1:0
func (b *BedrockProvider) SupportsModel(modelName string) bool {
	return GetRegistry().ValidateModel(b.Name(), modelName)
}

// Configure sets the AWS region
func (b *BedrockProvider) Configure(region string) error {
	if region == "" {
		return &config.MissingCredentialError{Variable: config.AWSRegionVar}
	}
	b.region = region
	return nil
}

// SetVerbose enables or disables verbose mode
func (b *BedrockProvider) SetVerbose(verbose bool) {
	b.verbose = verbose
}

// SendPrompt runs one Converse call with a single user message
func (b *BedrockProvider) SendPrompt(ctx context.Context, modelName string, prompt string) (string, error) {
	if b.region == "" {
		return "", &config.MissingCredentialError{Variable: config.AWSRegionVar}
	}
	b.debugf("Sending prompt to %s in %s (%d characters)", modelName, b.region, len(prompt))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(b.region))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	client := bedrockruntime.NewFromConfig(awsCfg)

	out, err := client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(modelName),
		Messages: []brtypes.Message{
			{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: prompt},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("bedrock %s: %w", modelName, err)
	}

	text, err := converseText(out)
	if err != nil {
		return "", fmt.Errorf("bedrock %s: %w", modelName, err)
	}
	return text, nil
}

// converseText joins the text blocks of a Converse reply
func converseText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil {
		return "", fmt.Errorf("empty response")
	}
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("unexpected output type %T", out.Output)
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String(), nil
}
