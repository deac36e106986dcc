package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
)

// bindRequest fills the request struct from the url query for reading
// methods and from the JSON body otherwise.
func bindRequest(r *http.Request, req any) error {
	switch r.Method {
	case http.MethodGet, http.MethodDelete:
		return bindQuery(r, req)

	default:
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}

		if len(b) == 0 {
			return nil
		}

		return json.Unmarshal(b, req)
	}
}

func bindQuery(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}

			v.Field(i).SetInt(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}

			v.Field(i).SetBool(val)

		default:
			return fmt.Errorf("unsupported query field %s", name)
		}
	}

	return nil
}
