// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

// readEnv populates the provided Config struct with values from
// environment variables.
func readEnv(spec any) error {
	structValue := reflect.ValueOf(spec)
	if structValue.Kind() != reflect.Ptr {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structValue = structValue.Elem()
	if structValue.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got a pointer to %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structType := structValue.Type()

	for fieldIndex := range structValue.NumField() {
		field := structValue.Field(fieldIndex)
		fieldType := structType.Field(fieldIndex)

		if fieldType.Anonymous {
			if field.Kind() == reflect.Struct {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			if field.Kind() == reflect.Struct {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		parts := strings.Split(tag, ",")
		envVarName := parts[0]
		overwrite := slices.Contains(parts[1:], "overwrite")

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			// Default values are handled by SetDefaults.
			continue
		}

		if !field.CanSet() {
			continue
		}

		if !overwrite && !isZero(field) {
			continue
		}

		if err := setFieldValue(field, fieldType, envVarName, envValue); err != nil {
			return err
		}
	}

	return nil
}

// setFieldValue sets the field value based on its type.
func setFieldValue(
	field reflect.Value,
	fieldType reflect.StructField,
	envVarName, envValue string,
) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf(
				"failed to parse bool for %s from env var %s (%s): %w",
				fieldType.Name, envVarName, envValue, err)
		}

		field.SetBool(boolValue)
	case reflect.Slice:
		// All slices used in configuration are of strings
		if field.Type().Elem().Kind() == reflect.String {
			values := strings.Split(envValue, ",")
			trimmedValues := make([]string, 0, len(values))

			for _, value := range values {
				trimmed := strings.TrimSpace(value)
				if trimmed != "" {
					trimmedValues = append(trimmedValues, trimmed)
				}
			}

			field.Set(reflect.ValueOf(trimmedValues))
		} else {
			return fmt.Errorf("%w for field %s", errUnsupportedSliceType, fieldType.Name)
		}
	case reflect.Struct:
		return readEnv(field.Addr().Interface())
	default:
		return fmt.Errorf("%w for field %s: %s", errUnsupportedFieldType, fieldType.Name, field.Kind())
	}

	return nil
}

// isZero checks if a reflect.Value is its zero value.
func isZero(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.String:
		return value.Len() == 0
	case reflect.Bool:
		return !value.Bool()
	case reflect.Slice:
		return value.Len() == 0
	case reflect.Struct:
		for fieldIndex := range value.NumField() {
			if !isZero(value.Field(fieldIndex)) {
				return false
			}
		}

		return true
	}

	return false
}

// useDotEnv loads environment variables from a .env file, checking the
// current working directory, then the directory of the binary. A missing
// .env file is not an error.
func useDotEnv() error {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn().
			Err(err).
			Msg("Could not get current working directory")
	} else {
		envPath := filepath.Join(cwd, ".env")
		if err := tryLoadDotEnv(envPath); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			log.Warn().
				Err(err).
				Str("path", envPath).
				Msg("Error trying to load .env file")
		}
	}

	// Fallback: the directory of the running binary.
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}

	if err := tryLoadDotEnv(filepath.Join(dir, ".env")); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// tryLoadDotEnv loads one .env file without overriding variables that are
// already set in the environment.
func tryLoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Loaded .env file")

	return nil
}
