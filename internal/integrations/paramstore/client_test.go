package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	out *ssm.GetParameterOutput
	err error

	lastInput *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastInput = in
	return f.out, f.err
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestGetParameter_HappyPath(t *testing.T) {
	api := &fakeSSM{out: &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{Value: aws.String("param-value")},
	}}
	c, err := New(api)
	require.NoError(t, err)

	got, err := c.GetParameter(context.Background(), "/chat/config/model_id")
	require.NoError(t, err)
	require.Equal(t, "param-value", got)

	require.Equal(t, "/chat/config/model_id", *api.lastInput.Name)
	require.True(t, *api.lastInput.WithDecryption)
}

func TestGetParameter_EmptyName(t *testing.T) {
	c, err := New(&fakeSSM{})
	require.NoError(t, err)

	_, err = c.GetParameter(context.Background(), "   ")
	require.Error(t, err)
}

func TestGetParameter_APIErrorIsWrapped(t *testing.T) {
	c, err := New(&fakeSSM{err: errors.New("parameter not found")})
	require.NoError(t, err)

	_, err = c.GetParameter(context.Background(), "/missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), `paramstore: get parameter "/missing"`)
}

func TestGetParameter_MissingValue(t *testing.T) {
	c, err := New(&fakeSSM{out: &ssm.GetParameterOutput{}})
	require.NoError(t, err)

	_, err = c.GetParameter(context.Background(), "/empty")
	require.Error(t, err)
}
