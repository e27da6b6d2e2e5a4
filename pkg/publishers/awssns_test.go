package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-456")}, nil
}

func TestAWSSNSSenderSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sender := &snsSender{
		topicARN: "arn:aws:sns:ap-south-1:1:brief-refresh",
		api:      client,
		log:      noopLogger{},
	}

	evt := NewEvent("public/data/epaper_data.json", nil)
	if err := sender.Send(context.Background(), evt); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:ap-south-1:1:brief-refresh" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["snapshot"]
	if !ok || aws.ToString(attr.StringValue) != evt.Snapshot {
		t.Fatalf("snapshot attribute missing or wrong: %#v", attr)
	}
}

func TestAWSSNSSenderSendError(t *testing.T) {
	sender := &snsSender{
		topicARN: "arn:aws:sns:ap-south-1:1:brief-refresh",
		api:      &fakeSNSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}
	if err := sender.Send(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error from Send")
	}
}
