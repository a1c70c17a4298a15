package catalog

import (
	"context"
	"errors"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// scanMock serves pre-built pages, following LastEvaluatedKey like DynamoDB does.
type scanMock struct {
	pages [][]map[string]types.AttributeValue
	err   error
	calls int
}

func (m *scanMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	i := m.calls
	m.calls++
	out := &dyn.ScanOutput{Items: m.pages[i]}
	if i+1 < len(m.pages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: "cursor"},
		}
	}
	return out, nil
}

func row(name, price string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"name":  &types.AttributeValueMemberS{Value: name},
		"price": &types.AttributeValueMemberN{Value: price},
	}
}

func TestLoadTable_PagesAndSorts(t *testing.T) {
	mock := &scanMock{pages: [][]map[string]types.AttributeValue{
		{row("Tea", "10"), row("samosa", "12")},
		{row("coffee", "20")},
	}}

	c, err := LoadTable(context.Background(), mock, "catalog")
	if err != nil {
		t.Fatalf("LoadTable error: %v", err)
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 scan calls, got %d", mock.calls)
	}

	got := c.Entries()
	want := []string{"coffee", "samosa", "tea"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("entry %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
	if c.Lookup("TEA") != 10 {
		t.Fatalf("expected tea=10, got %d", c.Lookup("TEA"))
	}
}

func TestLoadTable_Errors(t *testing.T) {
	scanErr := errors.New("boom")
	if _, err := LoadTable(context.Background(), &scanMock{err: scanErr}, "catalog"); !errors.Is(err, scanErr) {
		t.Fatalf("expected scan error to be wrapped, got %v", err)
	}

	bad := &scanMock{pages: [][]map[string]types.AttributeValue{
		{row("tea", "10"), row("TEA", "12")},
	}}
	if _, err := LoadTable(context.Background(), bad, "catalog"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for duplicate rows, got %v", err)
	}
}
