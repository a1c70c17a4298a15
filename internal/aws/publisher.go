package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/imrishuroy/go-qr-orderform/internal/orders"
)

// Publisher sends completed orders to the order feed queue.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// PublishOrder sends the compact order JSON as the message body, with the
// order id, dining mode and amount as message attributes.
func (p *Publisher) PublishOrder(ctx context.Context, res *orders.Result) error {
	body := string(res.Compact)
	return p.SendOrderMessage(ctx, body, map[string]string{
		"order_id": res.Order.OrderID,
		"mode":     res.Order.Mode,
		"amount":   strconv.FormatInt(res.Order.Amount, 10),
	})
}

// SendOrderMessage sends an order message to SQS. messageBody should be a JSON string.
// Empty attribute values are skipped because SQS rejects them.
func (p *Publisher) SendOrderMessage(ctx context.Context, messageBody string, attributes map[string]string) error {
	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &messageBody,
	}
	msgAttrs := map[string]sqstypes.MessageAttributeValue{}
	for k, v := range attributes {
		if v == "" {
			continue
		}
		msgAttrs[k] = sqstypes.MessageAttributeValue{
			DataType:    awsString("String"),
			StringValue: awsString(v),
		}
	}
	if len(msgAttrs) > 0 {
		input.MessageAttributes = msgAttrs
	}

	_, err := p.SQS.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
