package graph

import "errors"

// NetworkClient turns movie scripts into character interaction networks.
// It holds the pairing parameters shared by every request and no other state,
// so one client can serve concurrent calls.
//
// A NetworkClient should be created using NewNetworkClient.
type NetworkClient struct {
	params PairParams
}

// NewNetworkClientParams defines the configuration parameters for creating
// a new NetworkClient.
//
// Sentinels lists the extractor labels that are not characters.
// MinCharacterLines is the line count a character has to exceed.
// MinPairExchanges is the exchange count a pair has to exceed.
// Zero values select the package defaults.
type NewNetworkClientParams struct {
	Sentinels         []string
	MinCharacterLines int
	MinPairExchanges  int
}

// NewNetworkClient creates and returns a new NetworkClient configured with
// the provided parameters.
//
// Example:
//
//	client, err := graph.NewNetworkClient(graph.NewNetworkClientParams{
//		MinCharacterLines: 5,
//		MinPairExchanges:  1,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Returns an error for negative thresholds.
func NewNetworkClient(params NewNetworkClientParams) (*NetworkClient, error) {
	if params.MinCharacterLines < 0 || params.MinPairExchanges < 0 {
		return nil, errors.New("thresholds must not be negative")
	}

	n := &NetworkClient{
		params: PairParams{
			Sentinels:         params.Sentinels,
			MinCharacterLines: params.MinCharacterLines,
			MinPairExchanges:  params.MinPairExchanges,
		}.withDefaults(),
	}

	return n, nil
}

// Params returns the effective pairing parameters.
func (n *NetworkClient) Params() PairParams {
	return n.params
}
