package deluge

import (
	"context"
	"fmt"
	"time"

	"github.com/quepf/deluge-rpc/internal/rpc"
)

// statusKeys is the field set requested from the daemon for TorrentStatus.
var statusKeys = []string{
	"name", "state", "progress", "ratio",
	"total_size", "total_done",
	"download_payload_rate", "upload_payload_rate",
	"eta", "num_seeds", "num_peers",
	"save_path", "is_finished",
}

// TorrentStatus is the subset of per-torrent state the client surfaces.
type TorrentStatus struct {
	Hash         rpc.InfoHash
	Name         string
	State        string
	Progress     float64 // percent, 0..100
	Ratio        float64
	TotalSize    int64
	TotalDone    int64
	DownloadRate int64 // bytes/sec
	UploadRate   int64 // bytes/sec
	ETA          time.Duration
	Seeds        int64
	Peers        int64
	SavePath     string
	Finished     bool
}

func statusFromDict(hash rpc.InfoHash, dict map[string]any) *TorrentStatus {
	status := &TorrentStatus{Hash: hash}
	if s, ok := dict["name"].(string); ok {
		status.Name = s
	}
	if s, ok := dict["state"].(string); ok {
		status.State = s
	}
	if f, ok := looseFloat(dict["progress"]); ok {
		status.Progress = f
	}
	if f, ok := looseFloat(dict["ratio"]); ok {
		status.Ratio = f
	}
	if n, ok := looseInt(dict["total_size"]); ok {
		status.TotalSize = n
	}
	if n, ok := looseInt(dict["total_done"]); ok {
		status.TotalDone = n
	}
	if n, ok := looseInt(dict["download_payload_rate"]); ok {
		status.DownloadRate = n
	}
	if n, ok := looseInt(dict["upload_payload_rate"]); ok {
		status.UploadRate = n
	}
	if n, ok := looseInt(dict["eta"]); ok {
		status.ETA = time.Duration(n) * time.Second
	}
	if n, ok := looseInt(dict["num_seeds"]); ok {
		status.Seeds = n
	}
	if n, ok := looseInt(dict["num_peers"]); ok {
		status.Peers = n
	}
	if s, ok := dict["save_path"].(string); ok {
		status.SavePath = s
	}
	if b, ok := dict["is_finished"].(bool); ok {
		status.Finished = b
	}
	return status
}

// GetTorrentStatus fetches the status of one torrent.
func (s *Session) GetTorrentStatus(ctx context.Context, hash rpc.InfoHash) (*TorrentStatus, error) {
	if err := s.require("core.get_torrent_status", authDefault); err != nil {
		return nil, err
	}
	keys := make([]any, len(statusKeys))
	for i, key := range statusKeys {
		keys[i] = key
	}
	result, err := s.Call(ctx, "core.get_torrent_status", []any{hash.String(), keys}, nil)
	if err != nil {
		return nil, err
	}
	dict, err := resultStringMap(result, "core.get_torrent_status")
	if err != nil {
		return nil, err
	}
	return statusFromDict(hash, dict), nil
}

// GetTorrentsStatus fetches status for every torrent matching filter
// (nil means all), keyed by info hash.
func (s *Session) GetTorrentsStatus(ctx context.Context, filter map[string]any) (map[rpc.InfoHash]*TorrentStatus, error) {
	if err := s.require("core.get_torrents_status", authDefault); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = map[string]any{}
	}
	keys := make([]any, len(statusKeys))
	for i, key := range statusKeys {
		keys[i] = key
	}
	result, err := s.Call(ctx, "core.get_torrents_status", []any{filter, keys}, nil)
	if err != nil {
		return nil, err
	}
	byHash, err := resultStringMap(result, "core.get_torrents_status")
	if err != nil {
		return nil, err
	}
	statuses := make(map[rpc.InfoHash]*TorrentStatus, len(byHash))
	for rawHash, rawDict := range byHash {
		hash, err := rpc.ParseInfoHash(rawHash)
		if err != nil {
			return nil, fmt.Errorf("core.get_torrents_status: key: %w", err)
		}
		dict, ok := rawDict.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("core.get_torrents_status: entry %s is %T, want dict", rawHash, rawDict)
		}
		statuses[hash] = statusFromDict(hash, dict)
	}
	return statuses, nil
}
