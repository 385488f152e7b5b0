package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Every variable the loader reads lives under one namespace so a deployment's
// engagement settings are easy to spot in an environment dump:
// GREENKIT_SERVER_ADDR, GREENKIT_STORAGE_ADAPTER, GREENKIT_LOG_LEVEL and so
// on. Struct tags carry the name without the prefix.
const envPrefix = "GREENKIT_"

var durationType = reflect.TypeOf(time.Duration(0))

// loadFromEnv overlays GREENKIT_* variables onto cfg. Unset or empty
// variables leave the existing value (file or default) in place.
func loadFromEnv(cfg *Config) error {
	return overlayEnv(reflect.ValueOf(cfg).Elem())
}

func overlayEnv(section reflect.Value) error {
	typ := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		if field.Kind() == reflect.Struct {
			if err := overlayEnv(field); err != nil {
				return err
			}
			continue
		}
		tag := typ.Field(i).Tag.Get("env")
		if tag == "" {
			continue
		}
		name := envPrefix + tag
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := assignEnv(field, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// assignEnv parses raw into field. The config surface only needs strings,
// booleans, integers, durations and comma separated string lists; anything
// else in a tagged field is a programming error.
func assignEnv(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field is not settable")
	}
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q", raw)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element %s", field.Type().Elem().Kind())
		}
		parts := strings.Split(raw, ",")
		list := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for i, part := range parts {
			list.Index(i).SetString(strings.TrimSpace(part))
		}
		field.Set(list)

	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
