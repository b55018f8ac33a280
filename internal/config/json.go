package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Node struct {
		ID string `json:"id"`
	} `json:"node,omitempty"`

	Remote struct {
		BaseURL        string   `json:"address"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Engine struct {
		MaxRetries         int      `json:"max_retries"`
		BackoffBase        Duration `json:"backoff_base"`
		BackoffCap         Duration `json:"backoff_cap"`
		SyncInterval       Duration `json:"sync_interval"`
		RederiveSuperseded bool     `json:"rederive_superseded"`
	} `json:"engine,omitempty"`

	Monitor struct {
		Enabled bool   `json:"enabled"`
		Address string `json:"address"`
	} `json:"monitor,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Node: Node{
			ID: jsonCfg.Node.ID,
		},
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			Token:          jsonCfg.Remote.Token,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Engine: Engine{
			MaxRetries:         jsonCfg.Engine.MaxRetries,
			BackoffBase:        time.Duration(jsonCfg.Engine.BackoffBase),
			BackoffCap:         time.Duration(jsonCfg.Engine.BackoffCap),
			SyncInterval:       time.Duration(jsonCfg.Engine.SyncInterval),
			RederiveSuperseded: jsonCfg.Engine.RederiveSuperseded,
		},
		Monitor: Monitor{
			Enabled: jsonCfg.Monitor.Enabled,
			Address: jsonCfg.Monitor.Address,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
