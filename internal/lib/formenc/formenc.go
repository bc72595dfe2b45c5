// Package formenc кодирует параметры запросов к платёжному шлюзу.
//
// Шлюз принимает тела запросов в формате application/x-www-form-urlencoded
// со скобочной нотацией для вложенных объектов (parent[child]=value) и
// повторяющимися ключами для массивов (parent[]=v1&parent[]=v2).
// Значения nil полностью опускаются, порядок ключей детерминирован.
package formenc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// Query кодирует параметры строки запроса: срезы разворачиваются в
// повторяющиеся ключи (b=2&b=3), значения nil пропускаются.
func Query(params map[string]any) string {
	vals := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := params[k]
		if isNil(v) {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := range rv.Len() {
				item := rv.Index(i).Interface()
				if isNil(item) {
					continue
				}
				vals.Add(k, scalarString(item))
			}
			continue
		}
		vals.Add(k, scalarString(v))
	}
	return vals.Encode()
}

// Form кодирует тело запроса со скобочной нотацией для вложенных структур.
func Form(params map[string]any) string {
	vals := url.Values{}
	flatten("", params, vals)
	return vals.Encode()
}

// StructToMap превращает типизированную структуру в map[string]any через
// JSON, сохраняя числа как json.Number, чтобы суммы не искажались float64.
func StructToMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("formenc.StructToMap: %w", err)
	}
	var result map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("formenc.StructToMap: %w", err)
	}
	return result, nil
}

func flatten(prefix string, v any, out url.Values) {
	if isNil(v) {
		return
	}
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := k
			if prefix != "" {
				name = prefix + "[" + k + "]"
			}
			flatten(name, val[k], out)
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := range rv.Len() {
				flatten(prefix+"[]", rv.Index(i).Interface(), out)
			}
			return
		}
		out.Add(prefix, scalarString(v))
	}
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
