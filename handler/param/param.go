package param

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
	decoder.RegisterConverter(decimal.Decimal{}, func(value string) reflect.Value {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return reflect.Value{}
		}

		return reflect.ValueOf(d)
	})
}

// Binding decodes request parameters into v: the query string for GET
// requests, the json body otherwise.
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		return decoder.Decode(v, r.URL.Query())
	}

	return json.NewDecoder(r.Body).Decode(v)
}
