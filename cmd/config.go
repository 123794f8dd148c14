package cmd

// Config carries everything the application binary needs from the
// environment. AMQP settings are optional: with an empty AMQPURL the engine
// broadcasts over websockets only.
type Config struct {
	HTTPPort     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	AMQPURL      string
	AMQPExchange string

	// StagingPoints optionally overrides the built-in network with a JSON
	// array of {"id","name","lat","lng"} objects.
	StagingPoints string
}
