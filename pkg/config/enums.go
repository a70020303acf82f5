package config

// CloudProvider selects which cloud backs runbook object storage.
type CloudProvider string

const (
	CloudProviderAWS   CloudProvider = "aws"
	CloudProviderOCI   CloudProvider = "oci"
	CloudProviderLocal CloudProvider = "local"
)

// IsValid reports whether p is a recognized cloud provider.
func (p CloudProvider) IsValid() bool {
	switch p {
	case CloudProviderAWS, CloudProviderOCI, CloudProviderLocal:
		return true
	default:
		return false
	}
}

// VectorStoreProvider selects the C4 backend.
type VectorStoreProvider string

const (
	VectorStoreProviderLocal VectorStoreProvider = "local"
	VectorStoreProviderOCI   VectorStoreProvider = "oci"
	VectorStoreProviderAWS   VectorStoreProvider = "aws"
)

// IsValid reports whether p is a recognized vector store provider.
func (p VectorStoreProvider) IsValid() bool {
	switch p {
	case VectorStoreProviderLocal, VectorStoreProviderOCI, VectorStoreProviderAWS:
		return true
	default:
		return false
	}
}

// UsesQdrant reports whether p is backed by a managed Qdrant deployment
// rather than the in-process local store.
func (p VectorStoreProvider) UsesQdrant() bool {
	return p == VectorStoreProviderOCI || p == VectorStoreProviderAWS
}

// LLMProviderName selects the C3/C6 backend.
type LLMProviderName string

const (
	LLMProviderOllama     LLMProviderName = "ollama"
	LLMProviderAWSBedrock LLMProviderName = "aws-bedrock"
)

// IsValid reports whether n is a recognized LLM/embedding provider.
func (n LLMProviderName) IsValid() bool {
	return n == LLMProviderOllama || n == LLMProviderAWSBedrock
}

// DestinationType selects which webhook destination implementation a
// output.webhooks[] entry builds.
type DestinationType string

const (
	DestinationTypeHTTP  DestinationType = "http"
	DestinationTypeFile  DestinationType = "file"
	DestinationTypeSlack DestinationType = "slack"
)

// IsValid reports whether t is a recognized destination type.
func (t DestinationType) IsValid() bool {
	switch t {
	case DestinationTypeHTTP, DestinationTypeFile, DestinationTypeSlack:
		return true
	default:
		return false
	}
}
