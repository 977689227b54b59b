package artifact

type Config struct {
	// Model and encoder files exported by the training pipeline.
	ModelFile    string `envconfig:"CONGEST_MODEL_FILE" default:"model/traffic_model.json"`
	EncodersFile string `envconfig:"CONGEST_ENCODERS_FILE" default:"model/label_encoders.json"`
}
