package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressReq struct {
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type lineReq struct {
	Quantity int64 `json:"quantity" validate:"gt=0"`
}

type sampleReq struct {
	Items   []lineReq       `json:"items" validate:"min=1,dive"`
	Billing addressReq      `json:"billing"`
	Total   decimal.Decimal `json:"total" validate:"gte=0"`
}

func TestValidate_OK(t *testing.T) {
	err := New().Validate(&sampleReq{
		Items:   []lineReq{{Quantity: 1}},
		Billing: addressReq{Phone: "0900"},
		Total:   decimal.NewFromInt(10),
	})
	assert.NoError(t, err)
}

func TestValidate_NestedFieldUsesJSONPath(t *testing.T) {
	err := New().Validate(&sampleReq{
		Items: []lineReq{{Quantity: 1}},
		Total: decimal.NewFromInt(10),
	})

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "billing.phone", ve.Field)
	assert.Equal(t, "required", ve.Tag)
}

func TestValidate_SliceElement(t *testing.T) {
	err := New().Validate(&sampleReq{
		Items:   []lineReq{{Quantity: 1}, {Quantity: 0}},
		Billing: addressReq{Phone: "0900"},
	})

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items[1].quantity", ve.Field)
	assert.Equal(t, "gt", ve.Tag)
}

func TestValidate_NegativeDecimal(t *testing.T) {
	err := New().Validate(&sampleReq{
		Items:   []lineReq{{Quantity: 1}},
		Billing: addressReq{Phone: "0900"},
		Total:   decimal.NewFromInt(-1),
	})

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "total", ve.Field)
	assert.Equal(t, "gte", ve.Tag)
	assert.Contains(t, ve.Error(), "total failed on gte=0")
}

func TestValidate_EmptyItems(t *testing.T) {
	err := New().Validate(&sampleReq{Billing: addressReq{Phone: "0900"}})

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items", ve.Field)
	assert.Equal(t, "min", ve.Tag)
}
