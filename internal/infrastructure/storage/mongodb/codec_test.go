package mongodb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"inventory/internal/domain/article"
)

func TestDecimalCodec_StoresDecimal128(t *testing.T) {
	reg := NewRegistry()
	a := article.Article{ID: 3, Name: "Milch", Size: decimal.RequireFromString("1.5"), Unit: "l", GTINs: []string{}}

	data, err := bson.MarshalWithRegistry(reg, a)
	require.NoError(t, err)

	raw := bson.Raw(data)
	assert.Equal(t, bsontype.Decimal128, raw.Lookup("size").Type)
	_, err = raw.LookupErr("lots")
	assert.Error(t, err, "lots are stored in their own collection")

	var got article.Article
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &got))
	assert.True(t, a.Size.Equal(got.Size))
	assert.Equal(t, a.ID, got.ID)
}

func TestDecimalCodec_DecodesNumbers(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		doc  bson.M
		want string
	}{
		{"double", bson.M{"size": 0.5}, "0.5"},
		{"int32", bson.M{"size": int32(2)}, "2"},
		{"int64", bson.M{"size": int64(750)}, "750"},
		{"string", bson.M{"size": "12.25"}, "12.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(tt.doc)
			require.NoError(t, err)

			var got struct {
				Size decimal.Decimal `bson:"size"`
			}
			require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &got))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got.Size), "got %s", got.Size)
		})
	}
}
