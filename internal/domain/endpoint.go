package domain

// Interface names commonly used on registry endpoints
const (
	InterfaceAAS      = "AAS-3.0"
	InterfaceSubmodel = "SUBMODEL-3.0"
)

// ProtocolInformation holds the protocol metadata needed to reach an endpoint
type ProtocolInformation struct {
	EndpointAddress         string `json:"endpointAddress" yaml:"endpointAddress"`
	EndpointProtocol        string `json:"endpointProtocol,omitempty" yaml:"endpointProtocol,omitempty"`
	EndpointProtocolVersion string `json:"endpointProtocolVersion,omitempty" yaml:"endpointProtocolVersion,omitempty"`
	Subprotocol             string `json:"subprotocol,omitempty" yaml:"subprotocol,omitempty"`
	SubprotocolBody         string `json:"subprotocolBody,omitempty" yaml:"subprotocolBody,omitempty"`
	SubprotocolBodyEncoding string `json:"subprotocolBodyEncoding,omitempty" yaml:"subprotocolBodyEncoding,omitempty"`
}

// Endpoint is a protocol-level access point for a shell or submodel
type Endpoint struct {
	Interface           string              `json:"interface" yaml:"interface"`
	ProtocolInformation ProtocolInformation `json:"protocolInformation" yaml:"protocolInformation"`
}

// NewHTTPEndpoint creates an endpoint reachable over plain HTTP at address.
func NewHTTPEndpoint(iface, address string) Endpoint {
	return Endpoint{
		Interface: iface,
		ProtocolInformation: ProtocolInformation{
			EndpointAddress:  address,
			EndpointProtocol: "HTTP",
		},
	}
}
