// Package config provides the environment based configuration of the lending demo binary.
//
// Values are read from the process environment, optionally seeded from a .env file with godotenv.
// Variables already present in the environment win over the file.
//
//	LENDING_LOG_LEVEL               debug | info | warn | error (default info)
//	LENDING_LOG_FORMAT              text | json (default text)
//	LENDING_OBSERVABILITY_ENABLED   true | false (default false)
//	LENDING_STRICT_VALIDATION       true | false (default false)
//	LENDING_AMQP_URL                full AMQP URL, takes precedence over the RABBITMQ_* variables
//	RABBITMQ_USER, RABBITMQ_PASSWORD, RABBITMQ_IP, RABBITMQ_PORT
//	LENDING_AMQP_EXCHANGE           (default lending.notifications)
//	LENDING_POSTGRES_DSN            readers database, the in-memory registry is used when empty
//	LENDING_READERS_TABLE           (default readers)
//	LENDING_POSTGRES_MAX_CONNS      (default 10)
package config
