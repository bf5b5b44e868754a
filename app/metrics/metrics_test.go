package metrics

import (
	"testing"

	"github.com/mytheresa/product-barcode/barcode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestValidatorRecordsOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry(), "test")
	v := barcode.NewValidator(barcode.Default(), m, nil)

	_, _ = v.Validate("EAN13", "4006381333931")
	_, _ = v.Validate("EAN13", "4006381333932")
	_, _ = v.Validate("EAN13", "EAN134006381333931")
	_, _ = v.Validate("", "anything")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BarcodeValidations.WithLabelValues("EAN13", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BarcodeValidations.WithLabelValues("EAN13", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BarcodeValidations.WithLabelValues("EAN13", "repaired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BarcodeValidations.WithLabelValues("none", "skipped")))
}

func TestNewUsesPrefix(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "catalog")
	m.ObserveImport(3)

	count, err := testutil.GatherAndCount(reg, "catalog_codes_imported_total")

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CodesImported))
}
