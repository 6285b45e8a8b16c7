/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/creasty/defaults"

	"github.com/go-playground/validator/v10"

	"github.com/pkg/errors"

	"go.uber.org/multierr"

	"gopkg.in/yaml.v3"
)

import (
	"github.com/arana-db/ddlguard/pkg/constants"
	"github.com/arana-db/ddlguard/pkg/dialect"
	"github.com/arana-db/ddlguard/pkg/util/log"
)

var _configFilenameList = []string{"config.yaml", "config.yml"}

type (
	// Configuration represents a ddlguard configuration.
	Configuration struct {
		Kind       string                 `yaml:"kind" json:"kind,omitempty"`
		APIVersion string                 `yaml:"apiVersion" json:"apiVersion,omitempty"`
		Metadata   map[string]interface{} `yaml:"metadata" json:"metadata"`
		Data       *Data                  `validate:"required" yaml:"data" json:"data"`
		Logging    *log.LoggingConfig     `yaml:"logging" json:"logging,omitempty"`
		Trace      *Trace                 `yaml:"trace" json:"trace,omitempty"`
	}

	// Trace represents the configuration of tracing exporter.
	Trace struct {
		Type    string `default:"jaeger" validate:"required" yaml:"type" json:"type"`
		Address string `validate:"required" yaml:"address" json:"address"`
	}

	Data struct {
		Database     *Database         `validate:"required" yaml:"database" json:"database"`
		DataSources  []string          `validate:"required,min=1,dive,required" yaml:"data_sources" json:"data_sources"`
		ShardingRule *ShardingRule     `yaml:"sharding_rule,omitempty" json:"sharding_rule,omitempty"`
		Schemas      []*Schema         `validate:"dive" yaml:"schemas" json:"schemas"`
		Props        map[string]string `yaml:"props" json:"props,omitempty"`
	}

	Database struct {
		Name    string `validate:"required" yaml:"name" json:"name"`
		Dialect string `default:"MySQL" yaml:"dialect" json:"dialect"`
	}

	ShardingRule struct {
		Tables          []*Table `validate:"dive" yaml:"tables" json:"tables"`
		BroadcastTables []string `yaml:"broadcast_tables" json:"broadcast_tables,omitempty"`
	}

	Table struct {
		Name          string    `validate:"required" yaml:"name" json:"name"`
		AllowFullScan bool      `yaml:"allow_full_scan" json:"allow_full_scan,omitempty"`
		Topology      *Topology `validate:"required" yaml:"topology" json:"topology"`
	}

	Topology struct {
		DbPattern  string `validate:"required" yaml:"db_pattern" json:"db_pattern"`
		TblPattern string `validate:"required" yaml:"tbl_pattern" json:"tbl_pattern"`
		Layout     string `default:"mod" validate:"oneof=mod block" yaml:"layout" json:"layout"`
	}

	Schema struct {
		Name   string         `validate:"required" yaml:"name" json:"name"`
		Tables []*SchemaTable `validate:"dive" yaml:"tables" json:"tables"`
	}

	SchemaTable struct {
		Name    string    `validate:"required" yaml:"name" json:"name"`
		Columns []*Column `validate:"dive" yaml:"columns" json:"columns,omitempty"`
		Indexes []*Index  `validate:"dive" yaml:"indexes" json:"indexes,omitempty"`
	}

	Column struct {
		Name       string `validate:"required" yaml:"name" json:"name"`
		DataType   string `yaml:"type" json:"type,omitempty"`
		PrimaryKey bool   `yaml:"primary_key" json:"primary_key,omitempty"`
	}

	Index struct {
		Name   string `validate:"required" yaml:"name" json:"name"`
		Unique bool   `yaml:"unique" json:"unique,omitempty"`
	}
)

// Decoder decodes configuration.
type Decoder struct {
	reader io.Reader
}

func (d *Decoder) Decode(v interface{}) error {
	if err := yaml.NewDecoder(d.reader).Decode(v); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// NewDecoder creates a Decoder from a reader.
func NewDecoder(reader io.Reader) *Decoder {
	return &Decoder{reader: reader}
}

// Load loads the configuration from file path, defaults are applied and the result is validated.
func Load(path string) (*Configuration, error) {
	var (
		f   *os.File
		err error
	)

	if f, err = os.Open(path); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration file")
	}
	defer func() {
		_ = f.Close()
	}()

	var cfg Configuration
	if err = NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err = cfg.setDefaults(); err != nil {
		return nil, errors.Wrap(err, "failed to set default values of config")
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Locate returns the path of configuration file. An empty input falls back to the
// environment variable and then the default search paths.
func Locate(path string) (string, error) {
	if len(path) < 1 {
		path = os.Getenv(constants.EnvConfigPath)
	}
	if len(path) > 0 {
		return formatPath(path)
	}

	for _, it := range constants.GetConfigSearchPathList() {
		for _, filename := range _configFilenameList {
			p := filepath.Join(it, filename)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	return "", errors.New("no configuration file found")
}

// Validate validates the input configuration, all problems are reported together.
func Validate(cfg *Configuration) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	var errs error

	if _, err := dialect.Get(cfg.Data.Database.Dialect); err != nil {
		errs = multierr.Append(errs, err)
	}

	dataSources := make(map[string]struct{}, len(cfg.Data.DataSources))
	for _, it := range cfg.Data.DataSources {
		dataSources[it] = struct{}{}
	}

	sharded := make(map[string]struct{})
	if sr := cfg.Data.ShardingRule; sr != nil {
		for _, table := range sr.Tables {
			k := strings.ToLower(table.Name)
			if _, ok := sharded[k]; ok {
				errs = multierr.Append(errs, errors.Errorf("duplicated sharding table '%s'", table.Name))
				continue
			}
			sharded[k] = struct{}{}

			topology, err := table.Topology.build()
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "invalid topology of table '%s'", table.Name))
				continue
			}
			for db := range topology.Enumerate() {
				if _, ok := dataSources[db]; !ok {
					errs = multierr.Append(errs, errors.Errorf("table '%s' refers to unknown data source '%s'", table.Name, db))
				}
			}
		}
		for _, it := range sr.BroadcastTables {
			if _, ok := sharded[strings.ToLower(it)]; ok {
				errs = multierr.Append(errs, errors.Errorf("table '%s' cannot be both sharding and broadcast", it))
			}
		}
	}

	return errs
}

func (c *Configuration) setDefaults() error {
	if err := defaults.Set(c); err != nil {
		return err
	}
	if c.Data == nil {
		return nil
	}
	if c.Data.Database != nil {
		if err := defaults.Set(c.Data.Database); err != nil {
			return err
		}
	}
	if sr := c.Data.ShardingRule; sr != nil {
		for _, it := range sr.Tables {
			if it.Topology == nil {
				continue
			}
			if err := defaults.Set(it.Topology); err != nil {
				return err
			}
		}
	}
	if c.Logging != nil {
		if err := defaults.Set(c.Logging); err != nil {
			return err
		}
	}
	if c.Trace != nil {
		if err := defaults.Set(c.Trace); err != nil {
			return err
		}
	}
	return nil
}

func formatPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WithStack(err)
		}
		path = strings.Replace(path, "~", home, 1)
	}
	return filepath.Clean(path), nil
}
