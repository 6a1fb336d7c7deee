package sns

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	if out, _ := args.Get(0).(*sns.PublishOutput); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSendText_PublishesE164(t *testing.T) {
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return aws.ToString(in.PhoneNumber) == "+351912345678" && aws.ToString(in.Message) == "hi"
	})).Return(&sns.PublishOutput{MessageId: aws.String("m1")}, nil)

	s := &Sender{client: p}
	require.NoError(t, s.SendText(context.Background(), "351912345678", "hi"))
	p.AssertExpectations(t)
}

func TestSendText_PropagatesError(t *testing.T) {
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	s := &Sender{client: p}
	assert.EqualError(t, s.SendText(context.Background(), "1", "hi"), "throttled")
}
