package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// tableItem is the shape of a row in the catalog DynamoDB table.
type tableItem struct {
	Name  string `dynamodbav:"name"` // PK
	Price int64  `dynamodbav:"price"`
}

// LoadTable scans a DynamoDB table of {name, price} rows and builds a Catalog
// ordered by name.
func LoadTable(ctx context.Context, client dyn.ScanAPIClient, tableName string) (*Catalog, error) {
	p := dyn.NewScanPaginator(client, &dyn.ScanInput{TableName: &tableName})

	var entries []Entry
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan catalog table %s: %w", tableName, err)
		}
		var rows []tableItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &rows); err != nil {
			return nil, fmt.Errorf("%w: unmarshal catalog rows: %v", ErrMalformed, err)
		}
		for _, r := range rows {
			entries = append(entries, Entry{Name: r.Name, Price: r.Price})
		}
	}

	// scan order is arbitrary
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	c, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("load catalog table %s: %w", tableName, err)
	}
	return c, nil
}
