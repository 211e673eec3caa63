// Package actions invokes the sensor-network control functions hosted on
// AWS Lambda. The bot addresses actions by logical name; the mapping to
// deployed function names comes from configuration.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// Logical action names understood by the invoker.
const (
	GenerateData     = "generateData"
	ComputeAverages  = "computeAverages"
	AllSensorsOn     = "allSensorsOn"
	AllSensorsOff    = "allSensorsOff"
	BeachSensorOn    = "beachSensorOn"
	BeachSensorOff   = "beachSensorOff"
	ActiveMonitoring = "activeMonitoring"
)

// lambdaAPI is the minimal Lambda interface required by Invoker.
// Defined here for testability.
type lambdaAPI interface {
	Invoke(ctx context.Context, in *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Invoker calls Lambda functions by logical action name.
type Invoker struct {
	api       lambdaAPI
	functions map[string]string
}

// New creates an Invoker with the given action-to-function mapping.
func New(api lambdaAPI, functions map[string]string) (*Invoker, error) {
	if api == nil {
		return nil, errors.New("actions: api must not be nil")
	}
	if len(functions) == 0 {
		return nil, errors.New("actions: function mapping must not be empty")
	}
	fns := make(map[string]string, len(functions))
	for action, fn := range functions {
		fns[action] = fn
	}
	return &Invoker{api: api, functions: fns}, nil
}

// Invoke calls the function mapped to action synchronously with the payload
// serialized as a JSON object. A function-level error reported in the invoke
// output is returned as an error.
func (i *Invoker) Invoke(ctx context.Context, action string, payload map[string]string) error {
	fn, ok := i.functions[action]
	if !ok || fn == "" {
		return fmt.Errorf("actions: no function configured for action %q", action)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("actions: encode payload for %q: %w", action, err)
	}

	out, err := i.api.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(fn),
		InvocationType: lambdatypes.InvocationTypeRequestResponse,
		Payload:        body,
	})
	if err != nil {
		return fmt.Errorf("actions: invoke %s (%s): %w", action, fn, err)
	}
	if out.FunctionError != nil && *out.FunctionError != "" {
		return fmt.Errorf("actions: invoke %s (%s): function error: %s", action, fn, *out.FunctionError)
	}
	return nil
}
