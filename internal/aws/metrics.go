package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/imrishuroy/go-qr-orderform/internal/orders"
)

// Metrics publishes per-order CloudWatch metrics.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	nowFunc    func() time.Time
}

// NewMetrics returns a Metrics writer for namespace.
func NewMetrics(client CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{
		CloudWatch: client,
		Namespace:  namespace,
		nowFunc:    time.Now,
	}
}

// RecordOrder emits OrdersCreated (count) and OrderAmount (currency units)
// dimensioned by dining mode.
func (m *Metrics) RecordOrder(ctx context.Context, o orders.Order) error {
	mode := o.Mode
	if mode == "" {
		mode = "Unset"
	}
	dims := []cwtypes.Dimension{{Name: sdkaws.String("DiningMode"), Value: sdkaws.String(mode)}}
	ts := m.nowFunc()

	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(m.Namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String("OrdersCreated"),
				Dimensions: dims,
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitCount,
				Value:      sdkaws.Float64(1),
			},
			{
				MetricName: sdkaws.String("OrderAmount"),
				Dimensions: dims,
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitNone,
				Value:      sdkaws.Float64(float64(o.Amount)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
