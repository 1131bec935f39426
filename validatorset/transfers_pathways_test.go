package validatorset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/config"
)

func TestTransferValidatorFlagsInvalidTripAndRoutePairing(t *testing.T) {
	files := withOverride(minimalFeed, "transfers.txt",
		"from_stop_id,to_stop_id,transfer_type,from_trip_id\nS1,S2,0,T1\n")
	ctx := buildContext(t, files, config.Options{})
	transferValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "transfer_with_invalid_trip_and_route")
}

func TestTransferValidatorFlagsInvalidStopLocationType(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"S1,Main St,40.0,-73.0,0\nS2,Oak Ave,40.01,-73.01,0\nE1,Entrance,40.02,-73.02,2\n")
	files = withOverride(files, "transfers.txt", "from_stop_id,to_stop_id,transfer_type\nS1,E1,0\n")
	ctx := buildContext(t, files, config.Options{})
	transferValidator().Run(ctx)
	n, ok := findNotice(ctx, "transfer_with_invalid_stop_location_type")
	require.True(t, ok)
	v, _ := n.Context.Get("stopId")
	require.Equal(t, "E1", v)
}

func TestTransferValidatorFlagsDistanceTooLarge(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon\nS1,Main St,40.0,-73.0\nS2,Far Stop,41.5,-74.5\n")
	files = withOverride(files, "transfers.txt", "from_stop_id,to_stop_id,transfer_type\nS1,S2,0\n")
	ctx := buildContext(t, files, config.Options{})
	transferValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "transfer_distance_too_large")
}

func TestTransferValidatorAllowsShortDistance(t *testing.T) {
	files := withOverride(minimalFeed, "transfers.txt", "from_stop_id,to_stop_id,transfer_type\nS1,S2,0\n")
	ctx := buildContext(t, files, config.Options{})
	transferValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "transfer_distance_too_large")
	require.NotContains(t, codesIn(ctx), "transfer_distance_above_2_km")
}

func TestTransferValidatorFlagsInSeatTransferAtNonEdgeStop(t *testing.T) {
	files := withOverride(minimalFeed, "transfers.txt",
		"from_stop_id,to_stop_id,transfer_type,from_trip_id,to_trip_id\nS1,S2,4,T1,T1\n")
	ctx := buildContext(t, files, config.Options{})
	transferValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "in_seat_transfer_at_non_edge_stop")
}

func TestPathwayValidatorFlagsSelfLoop(t *testing.T) {
	files := withOverride(minimalFeed, "pathways.txt",
		"pathway_id,from_stop_id,to_stop_id,pathway_mode,is_bidirectional\nP1,S1,S1,1,0\n")
	ctx := buildContext(t, files, config.Options{})
	pathwayValidator().Run(ctx)
	n, ok := findNotice(ctx, "pathway_loop")
	require.True(t, ok)
	v, _ := n.Context.Get("pathwayId")
	require.Equal(t, "P1", v)
}

func TestPathwayValidatorFlagsMissingLevelIDForStairs(t *testing.T) {
	files := withOverride(minimalFeed, "pathways.txt",
		"pathway_id,from_stop_id,to_stop_id,pathway_mode,is_bidirectional\nP1,S1,S2,2,0\n")
	ctx := buildContext(t, files, config.Options{})
	pathwayValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "missing_level_id_for_pathway")
}

func TestPathwayValidatorAllowsStairsWithLevelID(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,level_id\n"+
			"S1,Main St,40.0,-73.0,L1\nS2,Oak Ave,40.01,-73.01,L2\n")
	files = withOverride(files, "pathways.txt",
		"pathway_id,from_stop_id,to_stop_id,pathway_mode,is_bidirectional\nP1,S1,S2,2,0\n")
	ctx := buildContext(t, files, config.Options{})
	pathwayValidator().Run(ctx)
	require.NotContains(t, codesIn(ctx), "missing_level_id_for_pathway")
}

func TestPathwayValidatorFlagsUnexpectedBidirectionalExitGate(t *testing.T) {
	files := withOverride(minimalFeed, "pathways.txt",
		"pathway_id,from_stop_id,to_stop_id,pathway_mode,is_bidirectional\nP1,S1,S2,7,1\n")
	ctx := buildContext(t, files, config.Options{})
	pathwayValidator().Run(ctx)
	require.Contains(t, codesIn(ctx), "pathway_unexpected_bidirectional_exit_gate")
}

func TestPathwayValidatorFlagsDanglingGenericNode(t *testing.T) {
	files := withOverride(minimalFeed, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,location_type\n"+
			"S1,Main St,40.0,-73.0,0\nS2,Oak Ave,40.01,-73.01,0\nGN1,Node,40.02,-73.02,3\n")
	ctx := buildContext(t, files, config.Options{})
	pathwayValidator().Run(ctx)
	n, ok := findNotice(ctx, "dangling_generic_node")
	require.True(t, ok)
	v, _ := n.Context.Get("stopId")
	require.Equal(t, "GN1", v)
}
