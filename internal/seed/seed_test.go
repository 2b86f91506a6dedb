package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jcmexdev/threewheels-sales/internal/catalog"
	"github.com/jcmexdev/threewheels-sales/internal/customer"
	"github.com/jcmexdev/threewheels-sales/internal/shop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Stock de tricycle 2022", f.Stock)
	assert.Len(t, f.Articles, catalog.StockCapacity)
	assert.LessOrEqual(t, len(f.Customers), customer.DirectoryCapacity)

	dore := f.Articles[5]
	assert.Equal(t, "Tricycle Doré", dore.Designation)
	assert.True(t, dore.UnitPrice.Equal(decimal.NewFromInt(400)))
	require.NotNil(t, dore.Shipping)
	assert.True(t, dore.Shipping.WeightKg.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, "Essence", f.Articles[8].Features.Fuel)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stock: Test stock
articles:
  - designation: Tricycle
    unit_price: "9.70"
    stock: 20
customers:
  - kind: company
    name: Apex and Co.
    contact: Joseph Mie
`), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Articles, 1)
	assert.True(t, f.Articles[0].UnitPrice.Equal(decimal.RequireFromString("9.7")))
	assert.Equal(t, customer.KindCompany, f.Customers[0].Kind)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("articles: [unterminated"))
	assert.ErrorContains(t, err, "seed: parse")
}

func TestApply(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	svc := shop.New(f.Stock, f.Directory)
	ctx := context.Background()

	require.NoError(t, Apply(ctx, svc, f))

	assert.Len(t, svc.ListArticles(ctx, ""), len(f.Articles))
	assert.Len(t, svc.ListArticles(ctx, "Electrique"), 3)
	assert.Len(t, svc.ListCustomers(ctx, customer.KindCompany), 4)

	dore, err := svc.GetArticle(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Tricycle Doré", dore.Designation)
	assert.NotNil(t, dore.Shipping)
}

func TestApply_StopsWhenStockIsFull(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	f.Articles = append(f.Articles, Article{Designation: "Eleventh", UnitPrice: decimal.NewFromInt(1)})

	err = Apply(context.Background(), shop.New("s", "d"), f)
	assert.ErrorIs(t, err, shop.ErrStockFull)
	assert.ErrorContains(t, err, "Eleventh")
}
