package util

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"log"
	"os"
	"strconv"
)

const Name = "extopy"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host        string
		HttpPort    int    `yaml:"httpPort"`
		DbPath      string `yaml:"dbPath"`
		PageSize    int    `yaml:"pageSize"`
		MaxPageSize int    `yaml:"maxPageSize"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	var buf []byte
	var err error

	buf, err = os.ReadFile(ConfigFileName)
	if err != nil {
		log.Printf("Config file not found at %s, using embedded defaults", ConfigFileName)
		buf = embeddedConfig
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envHost := os.Getenv("EXTOPY_HOST")
	envHttpPort := os.Getenv("EXTOPY_HTTPPORT")
	envDbPath := os.Getenv("EXTOPY_DBPATH")
	envPageSize := os.Getenv("EXTOPY_PAGESIZE")
	envMaxPageSize := os.Getenv("EXTOPY_MAXPAGESIZE")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.HttpPort = v
	}

	if envDbPath != "" {
		c.Conf.DbPath = envDbPath
	}

	if envPageSize != "" {
		v, err := strconv.Atoi(envPageSize)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.PageSize = v
	}

	if envMaxPageSize != "" {
		v, err := strconv.Atoi(envMaxPageSize)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.MaxPageSize = v
	}

	if c.Conf.PageSize <= 0 {
		c.Conf.PageSize = 25
	}

	if c.Conf.MaxPageSize <= 0 {
		c.Conf.MaxPageSize = 100
	}

	return c, nil
}
