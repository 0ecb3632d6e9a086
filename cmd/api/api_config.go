package main

import (
	"github.com/miromero13/certeth/pkg/logger"
	"github.com/miromero13/certeth/pkg/rabbitmq"
	"github.com/miromero13/certeth/src/database"
)

type ApiConfigJson struct {
	LoggerConf   logger.LoggerConfigJson     `json:"logger"`
	RabbitmqConf rabbitmq.RabbimqConfigJson  `json:"rabbitmq"`
	RestConf     ApiClientRestConfigJson     `json:"rest"`
	DatabaseConf database.DatabaseConfigJson `json:"database"`
}

func (acj ApiConfigJson) ConvertToDomain() ApiConfig {
	return ApiConfig{
		LoggerConf:   acj.LoggerConf.ConvertToDomain(),
		RabbitmqConf: acj.RabbitmqConf.ConvertToDomain(),
		RestConf:     acj.RestConf.ConvertToDomain(),
		DatabaseConf: acj.DatabaseConf.ConvertToDomain(),
	}
}

type ApiConfig struct {
	LoggerConf   logger.LoggerConfig
	RabbitmqConf rabbitmq.RabbitmqConfig
	RestConf     ApiClientRestConfig
	DatabaseConf database.DatabaseConfig
}

func (ac ApiConfig) GetLoggerConfig() logger.LoggerConfig {
	return ac.LoggerConf
}

func (ac ApiConfig) GetRabbitmqConfig() rabbitmq.RabbitmqConfig {
	return ac.RabbitmqConf
}

func (ac ApiConfig) GetRestApiPort() uint16 {
	return ac.RestConf.Port
}

func (ac ApiConfig) GetDatabaseConfig() database.DatabaseConfig {
	return ac.DatabaseConf
}

type ApiClientRestConfigJson struct {
	Port uint16 `json:"port"`
}

type ApiClientRestConfig struct {
	Port uint16
}

func (acrcj ApiClientRestConfigJson) ConvertToDomain() ApiClientRestConfig {
	return ApiClientRestConfig{
		Port: acrcj.Port,
	}
}
