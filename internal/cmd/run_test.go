// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fakedestination "github.com/mia-platform/tetl/internal/destination/fake"
	"github.com/mia-platform/tetl/internal/logger"
)

const configTemplate = `source:
  type: csv
  data:
    orders: %q
    customers: %q
destination:
  type: postgres
  destination_name: merged
transformations:
  tables:
  - table_name: orders
    transformations:
    - name: rename
      parameters:
        order_id: id
  join:
  - source_1: orders
    source_2: customers
    on: cust_id
    how: inner
`

func writeFixtures(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	ordersDir := filepath.Join(tempDir, "orders")
	customersDir := filepath.Join(tempDir, "customers")
	require.NoError(t, os.Mkdir(ordersDir, 0o755))
	require.NoError(t, os.Mkdir(customersDir, 0o755))

	ordersCSV := "order_id,cust_id\n1,10\n2,20\n"
	customersCSV := "cust_id,name\n10,Ann\n20,Bo\n"
	require.NoError(t, os.WriteFile(filepath.Join(ordersDir, "orders.csv"), []byte(ordersCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(customersDir, "customers.csv"), []byte(customersCSV), 0o600))

	configPath := filepath.Join(tempDir, "conf.yaml")
	configData := []byte(formatConfig(ordersDir, customersDir))
	require.NoError(t, os.WriteFile(configPath, configData, 0o600))

	return configPath
}

func formatConfig(ordersDir, customersDir string) string {
	return fmt.Sprintf(configTemplate, ordersDir, customersDir)
}

func TestRunCommand(t *testing.T) {
	t.Parallel()

	t.Run("local output renders the merged table", func(t *testing.T) {
		t.Parallel()

		configPath := writeFixtures(t)

		cmd := RunCmd()
		buffer := new(bytes.Buffer)
		cmd.SetOut(buffer)
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--config", configPath, "--local-output"})

		log := logger.NewLogger(new(bytes.Buffer))
		require.NoError(t, cmd.ExecuteContext(logger.WithContext(t.Context(), log)))

		output := buffer.String()
		assert.Contains(t, output, "ID")
		assert.Contains(t, output, "CUST_ID")
		assert.Contains(t, output, "Ann")
		assert.Contains(t, output, "Bo")
		assert.Contains(t, output, "(2 rows)")
	})

	t.Run("missing config flag fails with usage", func(t *testing.T) {
		t.Parallel()

		cmd := RunCmd()
		errBuffer := new(bytes.Buffer)
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(errBuffer)
		cmd.SetArgs([]string{})

		err := cmd.ExecuteContext(t.Context())
		assert.ErrorIs(t, err, errNoConfig)
		assert.Contains(t, errBuffer.String(), errNoConfig.Error())
	})

	t.Run("unreadable config path fails", func(t *testing.T) {
		t.Parallel()

		cmd := RunCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})

		err := cmd.ExecuteContext(t.Context())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown source type fails before any load", func(t *testing.T) {
		t.Parallel()

		tempDir := t.TempDir()
		configPath := filepath.Join(tempDir, "conf.yaml")
		configData := []byte(`source:
  type: ftp
  data:
    orders: /tmp/orders
destination:
  type: postgres
  destination_name: merged
transformations: {}
`)
		require.NoError(t, os.WriteFile(configPath, configData, 0o600))

		cmd := RunCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--config", configPath})

		err := cmd.ExecuteContext(t.Context())
		assert.ErrorContains(t, err, `source "orders"`)
	})
}

func TestRunOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		options     *runOptions
		expectedErr error
	}{
		"missing config path": {
			options:     &runOptions{},
			expectedErr: errNoConfig,
		},
		"config path set": {
			options: &runOptions{configPath: "conf.yaml"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := test.options.validate()
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRunOptionsLock(t *testing.T) {
	t.Parallel()

	options := &runOptions{
		configPath:  "conf.yaml",
		destination: fakedestination.NewFakeDestination(t),
	}

	options.lock.Lock()
	defer options.lock.Unlock()

	assert.NoError(t, options.execute(t.Context()))
}
