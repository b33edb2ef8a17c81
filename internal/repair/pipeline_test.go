package repair_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketscan/internal/repair"
)

func TestPipeline_EndToEnd(t *testing.T) {
	raw := "Voici le JSON:\n{storeName: Walmart, totalPaid: \"12,50\", quantity: \"3 unités\"}\nMerci"

	res := repair.NewPipeline().Run(raw)

	require.NoError(t, res.Err)
	require.NotNil(t, res.Record)
	assert.Equal(t, repair.StateParsed, res.State)
	require.NotNil(t, res.Record.StoreName)
	assert.Equal(t, "Walmart", *res.Record.StoreName)
	require.NotNil(t, res.Record.TotalPaid)
	assert.Equal(t, "12.50", *res.Record.TotalPaid)
	assert.Contains(t, res.CleanedText, `"quantity": 3`)
	assert.Equal(t, `{"storeName": "Walmart", "totalPaid": "12.50", "quantity": 3}`, res.CleanedText)
	assert.False(t, res.FallbackUsed)
	assert.Nil(t, res.Diagnostic())
}

func TestPipeline_FullReceipt(t *testing.T) {
	raw := `Sure! {imageQuality: Good quality image, storeName: Carrefour, purchaseDate: "04/25/2024",
purchaseTime: null10:30 PM, totalPaid: "27,40 €",
products: [{description: Lait, code: 3017620422003, quantity: "2 x", price: "1'05",}{description: Pain, quantity: 1, price: "0,95"}]}`

	res := repair.NewPipeline().Run(raw)

	require.NoError(t, res.Err, res.CleanedText)
	rec := res.Record
	require.NotNil(t, rec)
	assert.Equal(t, "Good quality image", *rec.ImageQuality)
	assert.Equal(t, "Carrefour", *rec.StoreName)
	assert.Equal(t, "04/25/2024", *rec.PurchaseDate)
	assert.Equal(t, "10:30 PM", *rec.PurchaseTime)
	assert.Equal(t, "27.40", *rec.TotalPaid)
	assert.Nil(t, rec.StorePhone)
	require.Len(t, rec.Products, 2)
	assert.Equal(t, "Lait", *rec.Products[0].Description)
	assert.Equal(t, "3017620422003", *rec.Products[0].Code)
	assert.Equal(t, 2, *rec.Products[0].Quantity)
	assert.Equal(t, "1.05", *rec.Products[0].Price)
	assert.Equal(t, "Pain", *rec.Products[1].Description)
	assert.Equal(t, 1, *rec.Products[1].Quantity)
	assert.Equal(t, "0.95", *rec.Products[1].Price)
}

func TestPipeline_QuotedQuantityDecodes(t *testing.T) {
	res := repair.NewPipeline().Run(`{"products": [{"description": "Lait", "quantity": "2", "price": "1.05"}]}`)

	require.NoError(t, res.Err, res.CleanedText)
	require.Len(t, res.Record.Products, 1)
	require.NotNil(t, res.Record.Products[0].Quantity)
	assert.Equal(t, 2, *res.Record.Products[0].Quantity)
	assert.Empty(t, res.Nulled)
}

func TestPipeline_MixedCaseKeysMeetContracts(t *testing.T) {
	res := repair.NewPipeline(repair.WithSchemaCheck(true)).Run(`{"TotalPaid": "n/a", "PurchaseDate": "2024-04-25", "StoreName": "A"}`)

	require.NoError(t, res.Err, res.CleanedText)
	assert.Nil(t, res.Record.TotalPaid)
	assert.Nil(t, res.Record.PurchaseDate)
	require.NotNil(t, res.Record.StoreName)
	assert.Equal(t, "A", *res.Record.StoreName)
	assert.Len(t, res.Nulled, 2)
}

func TestPipeline_NoBraces(t *testing.T) {
	raw := "Sorry, I cannot read this receipt."

	res := repair.NewPipeline().Run(raw)

	assert.Nil(t, res.Record)
	assert.Equal(t, repair.StateFailed, res.State)
	var extErr *repair.ExtractionError
	require.True(t, errors.As(res.Err, &extErr))
	assert.Equal(t, raw, extErr.Raw)

	diag := res.Diagnostic()
	require.NotNil(t, diag)
	assert.Equal(t, raw, diag.RawText)
	assert.Empty(t, diag.CleanedJSONString)
}

func TestPipeline_ReversedBraces(t *testing.T) {
	res := repair.NewPipeline().Run("} nothing {")

	var extErr *repair.ExtractionError
	assert.True(t, errors.As(res.Err, &extErr))
}

func TestPipeline_DecodeFailure(t *testing.T) {
	raw := `{"storeName": "Walmart" "totalPaid": "1"}`

	res := repair.NewPipeline().Run(raw)

	assert.Nil(t, res.Record)
	var decErr *repair.DecodeError
	require.True(t, errors.As(res.Err, &decErr))
	assert.Equal(t, raw, decErr.Raw)
	assert.Equal(t, raw, decErr.Cleaned)

	diag := res.Diagnostic()
	require.NotNil(t, diag)
	assert.Equal(t, raw, diag.RawText)
	assert.Equal(t, raw, diag.CleanedJSONString)
	assert.NotEmpty(t, diag.Message)
}

func TestPipeline_StructuralFallback(t *testing.T) {
	chain, err := repair.FallbackChain([]string{repair.FallbackStructuralRepair})
	require.NoError(t, err)
	p := repair.NewPipeline(repair.WithFallbacks(chain))

	res := p.Run(`{"storeName": "Walmart" "totalPaid": "1,5"}`)

	require.NoError(t, res.Err, res.CleanedText)
	assert.True(t, res.FallbackUsed)
	assert.Equal(t, "Walmart", *res.Record.StoreName)
	assert.Equal(t, "1.5", *res.Record.TotalPaid)
}

func TestPipeline_DecimalFallback(t *testing.T) {
	chain, err := repair.FallbackChain([]string{repair.FallbackDecimalTruncate})
	require.NoError(t, err)
	p := repair.NewPipeline(repair.WithFallbacks(chain))

	res := p.Run(`{"storeName": "A", "tax": 12.50.00}`)

	require.NoError(t, res.Err)
	assert.True(t, res.FallbackUsed)
	assert.Equal(t, `{"storeName": "A", "tax": 12.50}`, res.CleanedText)
}

func TestPipeline_FallbackSkippedOnSuccess(t *testing.T) {
	chain, err := repair.FallbackChain([]string{repair.FallbackStructuralRepair})
	require.NoError(t, err)

	res := repair.NewPipeline(repair.WithFallbacks(chain)).Run(`{"storeName": "A"}`)

	require.NoError(t, res.Err)
	assert.False(t, res.FallbackUsed)
}

func TestPipeline_SchemaCheck(t *testing.T) {
	raw := `{"storeName": "A", "products": [null]}`

	res := repair.NewPipeline().Run(raw)
	require.NoError(t, res.Err)
	assert.Len(t, res.Record.Products, 1)

	res = repair.NewPipeline(repair.WithSchemaCheck(true)).Run(raw)
	var decErr *repair.DecodeError
	require.True(t, errors.As(res.Err, &decErr))
	assert.Contains(t, decErr.Error(), "receipt shape")
}

func TestPipeline_EveryFieldNullable(t *testing.T) {
	raw := `{"purchaseDate": "yesterday", "purchaseTime": "noon", "totalPaid": "lots",
"products": [{"quantity": "some", "price": "free"}]}`

	res := repair.NewPipeline(repair.WithSchemaCheck(true)).Run(raw)

	require.NoError(t, res.Err)
	rec := res.Record
	assert.Nil(t, rec.PurchaseDate)
	assert.Nil(t, rec.PurchaseTime)
	assert.Nil(t, rec.TotalPaid)
	require.Len(t, rec.Products, 1)
	assert.Nil(t, rec.Products[0].Quantity)
	assert.Nil(t, rec.Products[0].Price)
	assert.Len(t, res.Nulled, 5)
}

func TestPipeline_Total(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"}{",
		"{{{",
		`{"a": "\`,
		`{"price": "\u00"}`,
		`{:}`,
		`{"products": [{]}`,
		"{\x00\xff\xfe}",
		`{"quantity": -}`,
	}
	p := repair.NewPipeline()
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			res := p.Run(in)
			assert.True(t, (res.Record == nil) != (res.Err == nil), "input %q", in)
		})
	}
}

func TestPipeline_Concurrent(t *testing.T) {
	p := repair.NewPipeline()
	raw := `{storeName: Walmart, totalPaid: "12,50"}`

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := p.Run(raw)
			assert.NoError(t, res.Err)
		}()
	}
	wg.Wait()
}

func TestPipeline_Clean(t *testing.T) {
	cleaned, nulled, err := repair.NewPipeline().Clean(`x {"price": "n/a"} y`)

	require.NoError(t, err)
	assert.Equal(t, `{"price": null}`, cleaned)
	assert.Len(t, nulled, 1)
}
