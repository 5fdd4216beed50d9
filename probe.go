package shardmux

import (
	"fmt"
)

// topologyProbeResult is the parsed view of a probe response. It lives for
// the duration of a single admission only.
type topologyProbeResult struct {
	isPrimaryOrStandalone bool
	configServerMode      CatalogMode
	hasConfigServerMode   bool
	replicaSetName        string
}

// probeTopology runs the probe command on conn and parses the response.
// The round trip is synchronous and blocks the calling goroutine; no lock
// is held across it.
func probeTopology(conn Conn) (topologyProbeResult, error) {
	var res topologyProbeResult

	resp, err := conn.Call(NewProbeRequest())
	if err != nil {
		return res, ClientError{
			Code: ErrProbeFailed,
			Msg:  fmt.Sprintf("topology probe of %s failed: %s", conn.Addr(), err),
		}
	}
	doc, err := resp.Decode()
	if err != nil {
		return res, ClientError{
			Code: ErrProbeFailed,
			Msg:  fmt.Sprintf("malformed topology probe response from %s: %s", conn.Addr(), err),
		}
	}
	if ok, present := doc.BoolishField("ok"); present && !ok {
		errmsg, _ := doc.StringField("errmsg")
		if errmsg == "" {
			errmsg = "command failed"
		}
		return res, ClientError{
			Code: ErrProbeFailed,
			Msg:  fmt.Sprintf("topology probe of %s failed: %s", conn.Addr(), errmsg),
		}
	}

	res.isPrimaryOrStandalone, _ = doc.BoolishField("ismaster")
	res.replicaSetName, _ = doc.StringField("setName")

	if !doc.Has("configsvr") {
		// This isn't a config server we're talking to.
		return res, nil
	}
	mode, isInteger := doc.IntegerField("configsvr")
	if !isInteger {
		return res, ClientError{
			Code: ErrProtocolViolation,
			Msg:  fmt.Sprintf("configsvr field from %s is not an integer", conn.Addr()),
		}
	}
	switch mode {
	case 0:
		res.configServerMode = LegacySet
	case 1:
		res.configServerMode = ReplicaSetBased
	default:
		return res, ClientError{
			Code: ErrProtocolViolation,
			Msg: fmt.Sprintf("unrecognized configsvr mode number: %d, expected either 0 or 1",
				mode),
		}
	}
	res.hasConfigServerMode = true

	return res, nil
}
