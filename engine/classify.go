package engine

import (
	"fmt"
	"reflect"

	"github.com/jonwraymond/toolrepl/dataframe"
)

// classify converts the value of the trailing expression into its
// transport-safe representation. Dispatch is one level deep: tabular data
// becomes the dedicated dataframe document, basic composites pass through
// structured for JSON encoding, and everything else is rendered as its
// literal Go-syntax representation.
func classify(v reflect.Value) (result any, frame *DataFrame) {
	if !v.IsValid() {
		return nil, nil
	}
	val := v.Interface()
	if val == nil {
		return nil, nil
	}

	if d, ok := val.(*dataframe.DataFrame); ok {
		if d == nil {
			return nil, nil
		}
		rows, cols := d.Shape()
		return nil, &DataFrame{
			Type:    "dataframe",
			Data:    d.Records(),
			Columns: d.Columns(),
			Shape:   [2]int{rows, cols},
		}
	}

	switch reflect.ValueOf(val).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return val, nil
	default:
		return fmt.Sprintf("%#v", val), nil
	}
}
