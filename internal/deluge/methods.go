package deluge

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/netip"

	"github.com/quepf/deluge-rpc/internal/rpc"
)

// Wrappers for the daemon.* control surface.

// DaemonInfo returns the daemon version string. Callable before login.
func (s *Session) DaemonInfo(ctx context.Context) (string, error) {
	result, err := s.Call(ctx, "daemon.info", nil, nil)
	if err != nil {
		return "", err
	}
	return resultString(result, "daemon.info")
}

// Login authenticates and records the granted auth level on the session.
func (s *Session) Login(ctx context.Context, username, password string) (AuthLevel, error) {
	kwargs := map[string]any{"client_version": s.clientVersion}
	result, err := s.Call(ctx, "daemon.login", []any{username, password}, kwargs)
	if err != nil {
		return AuthNobody, err
	}
	level, err := resultInt(result, "daemon.login")
	if err != nil {
		return AuthNobody, err
	}
	granted := AuthLevel(level)
	s.setAuthLevel(granted)
	return granted, nil
}

// Shutdown asks the daemon process to exit.
func (s *Session) Shutdown(ctx context.Context) error {
	if err := s.require("daemon.shutdown", authDefault); err != nil {
		return err
	}
	result, err := s.Call(ctx, "daemon.shutdown", nil, nil)
	if err != nil {
		return err
	}
	return resultNone(result, "daemon.shutdown")
}

// GetMethodList lists every RPC method the daemon exports.
func (s *Session) GetMethodList(ctx context.Context) ([]string, error) {
	if err := s.require("daemon.get_method_list", authDefault); err != nil {
		return nil, err
	}
	result, err := s.Call(ctx, "daemon.get_method_list", nil, nil)
	if err != nil {
		return nil, err
	}
	return resultStringSlice(result, "daemon.get_method_list")
}

// GetVersion returns the daemon release version.
func (s *Session) GetVersion(ctx context.Context) (string, error) {
	if err := s.require("daemon.get_version", authDefault); err != nil {
		return "", err
	}
	result, err := s.Call(ctx, "daemon.get_version", nil, nil)
	if err != nil {
		return "", err
	}
	return resultString(result, "daemon.get_version")
}

// AuthorizedCall reports whether the session may invoke the named RPC.
func (s *Session) AuthorizedCall(ctx context.Context, rpcName string) (bool, error) {
	if err := s.require("daemon.authorized_call", AuthReadOnly); err != nil {
		return false, err
	}
	result, err := s.Call(ctx, "daemon.authorized_call", []any{rpcName}, nil)
	if err != nil {
		return false, err
	}
	return resultBool(result, "daemon.authorized_call")
}

// Wrappers for the core.* torrent surface.

// AddTorrentFile submits a .torrent file body. The daemon returns nil when
// it declines the duplicate rather than erroring, hence the pointer result.
func (s *Session) AddTorrentFile(ctx context.Context, filename string, filedump []byte, opts *TorrentOptions) (*rpc.InfoHash, error) {
	if err := s.require("core.add_torrent_file", authDefault); err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(filedump)
	result, err := s.Call(ctx, "core.add_torrent_file", []any{filename, encoded, opts.dict()}, nil)
	if err != nil {
		return nil, err
	}
	return resultOptionalInfoHash(result, "core.add_torrent_file")
}

// AddTorrentMagnet submits a magnet URI.
func (s *Session) AddTorrentMagnet(ctx context.Context, uri string, opts *TorrentOptions) (rpc.InfoHash, error) {
	if err := s.require("core.add_torrent_magnet", authDefault); err != nil {
		return rpc.InfoHash{}, err
	}
	result, err := s.Call(ctx, "core.add_torrent_magnet", []any{uri, opts.dict()}, nil)
	if err != nil {
		return rpc.InfoHash{}, err
	}
	return resultInfoHash(result, "core.add_torrent_magnet")
}

// AddTorrentURL has the daemon fetch a .torrent from url itself.
func (s *Session) AddTorrentURL(ctx context.Context, url string, opts *TorrentOptions, headers map[string]string) (*rpc.InfoHash, error) {
	if err := s.require("core.add_torrent_url", authDefault); err != nil {
		return nil, err
	}
	var headerArg any
	if len(headers) > 0 {
		dict := make(map[string]any, len(headers))
		for k, v := range headers {
			dict[k] = v
		}
		headerArg = dict
	}
	result, err := s.Call(ctx, "core.add_torrent_url", []any{url, opts.dict(), headerArg}, nil)
	if err != nil {
		return nil, err
	}
	return resultOptionalInfoHash(result, "core.add_torrent_url")
}

// RemoveTorrent removes one torrent, optionally with its downloaded data.
func (s *Session) RemoveTorrent(ctx context.Context, hash rpc.InfoHash, removeData bool) (bool, error) {
	if err := s.require("core.remove_torrent", authDefault); err != nil {
		return false, err
	}
	result, err := s.Call(ctx, "core.remove_torrent", []any{hash.String(), removeData}, nil)
	if err != nil {
		return false, err
	}
	return resultBool(result, "core.remove_torrent")
}

// RemoveTorrents removes several torrents in one call. The daemon reports
// per-torrent failures as (hash, reason) pairs; an empty map means every
// torrent was removed.
func (s *Session) RemoveTorrents(ctx context.Context, hashes []rpc.InfoHash, removeData bool) (map[rpc.InfoHash]string, error) {
	if err := s.require("core.remove_torrents", authDefault); err != nil {
		return nil, err
	}
	result, err := s.Call(ctx, "core.remove_torrents", []any{hashArgs(hashes), removeData}, nil)
	if err != nil {
		return nil, err
	}
	if len(result) != 1 {
		return nil, fmt.Errorf("core.remove_torrents: unexpected result shape %v", result)
	}
	items, ok := result[0].([]any)
	if !ok {
		return nil, fmt.Errorf("core.remove_torrents: result is not a list: %T", result[0])
	}
	failures := make(map[rpc.InfoHash]string, len(items))
	for _, item := range items {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("core.remove_torrents: malformed failure entry %v", item)
		}
		hashStr, ok1 := pair[0].(string)
		reason, ok2 := pair[1].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("core.remove_torrents: malformed failure entry %v", item)
		}
		hash, err := rpc.ParseInfoHash(hashStr)
		if err != nil {
			return nil, fmt.Errorf("core.remove_torrents: %w", err)
		}
		failures[hash] = reason
	}
	return failures, nil
}

// PauseTorrents pauses the given torrents.
func (s *Session) PauseTorrents(ctx context.Context, hashes []rpc.InfoHash) error {
	return s.voidTorrentCall(ctx, "core.pause_torrent", hashes)
}

// ResumeTorrents resumes the given torrents.
func (s *Session) ResumeTorrents(ctx context.Context, hashes []rpc.InfoHash) error {
	return s.voidTorrentCall(ctx, "core.resume_torrent", hashes)
}

// ForceRecheck rechecks the given torrents' data against their metadata.
func (s *Session) ForceRecheck(ctx context.Context, hashes []rpc.InfoHash) error {
	return s.voidTorrentCall(ctx, "core.force_recheck", hashes)
}

// ForceReannounce reannounces the given torrents to their trackers.
func (s *Session) ForceReannounce(ctx context.Context, hashes []rpc.InfoHash) error {
	return s.voidTorrentCall(ctx, "core.force_reannounce", hashes)
}

func (s *Session) voidTorrentCall(ctx context.Context, method string, hashes []rpc.InfoHash) error {
	if err := s.require(method, authDefault); err != nil {
		return err
	}
	result, err := s.Call(ctx, method, []any{hashArgs(hashes)}, nil)
	if err != nil {
		return err
	}
	return resultNone(result, method)
}

// SetTorrentOptions applies options to the given torrents.
func (s *Session) SetTorrentOptions(ctx context.Context, hashes []rpc.InfoHash, opts *TorrentOptions) error {
	if err := s.require("core.set_torrent_options", authDefault); err != nil {
		return err
	}
	result, err := s.Call(ctx, "core.set_torrent_options", []any{hashArgs(hashes), opts.dict()}, nil)
	if err != nil {
		return err
	}
	return resultNone(result, "core.set_torrent_options")
}

// ConnectPeer tells the daemon to connect a torrent to a specific peer.
func (s *Session) ConnectPeer(ctx context.Context, hash rpc.InfoHash, peer netip.AddrPort) error {
	if err := s.require("core.connect_peer", authDefault); err != nil {
		return err
	}
	args := []any{hash.String(), peer.Addr().String(), int64(peer.Port())}
	result, err := s.Call(ctx, "core.connect_peer", args, nil)
	if err != nil {
		return err
	}
	return resultNone(result, "core.connect_peer")
}

// GetSessionState lists the hashes of every torrent in the session.
func (s *Session) GetSessionState(ctx context.Context) ([]rpc.InfoHash, error) {
	if err := s.require("core.get_session_state", authDefault); err != nil {
		return nil, err
	}
	result, err := s.Call(ctx, "core.get_session_state", nil, nil)
	if err != nil {
		return nil, err
	}
	return resultInfoHashSlice(result, "core.get_session_state")
}

// GetFreeSpace reports free bytes at path, or at the daemon's default
// download location when path is empty.
func (s *Session) GetFreeSpace(ctx context.Context, path string) (int64, error) {
	if err := s.require("core.get_free_space", authDefault); err != nil {
		return 0, err
	}
	args := []any{}
	if path != "" {
		args = append(args, path)
	}
	result, err := s.Call(ctx, "core.get_free_space", args, nil)
	if err != nil {
		return 0, err
	}
	return resultInt(result, "core.get_free_space")
}

// GetListenPort reports the daemon's incoming peer port.
func (s *Session) GetListenPort(ctx context.Context) (int, error) {
	if err := s.require("core.get_listen_port", authDefault); err != nil {
		return 0, err
	}
	result, err := s.Call(ctx, "core.get_listen_port", nil, nil)
	if err != nil {
		return 0, err
	}
	port, err := resultInt(result, "core.get_listen_port")
	return int(port), err
}

// GetLibtorrentVersion reports the daemon's libtorrent build.
func (s *Session) GetLibtorrentVersion(ctx context.Context) (string, error) {
	if err := s.require("core.get_libtorrent_version", authDefault); err != nil {
		return "", err
	}
	result, err := s.Call(ctx, "core.get_libtorrent_version", nil, nil)
	if err != nil {
		return "", err
	}
	return resultString(result, "core.get_libtorrent_version")
}

// GetExternalIP reports the daemon's external address as seen by peers.
func (s *Session) GetExternalIP(ctx context.Context) (netip.Addr, error) {
	if err := s.require("core.get_external_ip", authDefault); err != nil {
		return netip.Addr{}, err
	}
	result, err := s.Call(ctx, "core.get_external_ip", nil, nil)
	if err != nil {
		return netip.Addr{}, err
	}
	raw, err := resultString(result, "core.get_external_ip")
	if err != nil {
		return netip.Addr{}, err
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("core.get_external_ip: %w", err)
	}
	return addr, nil
}

// GetConfig returns the daemon's full configuration dict.
func (s *Session) GetConfig(ctx context.Context) (map[string]any, error) {
	if err := s.require("core.get_config", authDefault); err != nil {
		return nil, err
	}
	result, err := s.Call(ctx, "core.get_config", nil, nil)
	if err != nil {
		return nil, err
	}
	return resultStringMap(result, "core.get_config")
}

// GetConfigValue returns one daemon configuration value.
func (s *Session) GetConfigValue(ctx context.Context, key string) (any, error) {
	if err := s.require("core.get_config_value", authDefault); err != nil {
		return nil, err
	}
	result, err := s.Call(ctx, "core.get_config_value", []any{key}, nil)
	if err != nil {
		return nil, err
	}
	return resultValue(result, "core.get_config_value")
}

// GetConfigValues returns the requested daemon configuration values.
func (s *Session) GetConfigValues(ctx context.Context, keys []string) (map[string]any, error) {
	if err := s.require("core.get_config_values", authDefault); err != nil {
		return nil, err
	}
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}
	result, err := s.Call(ctx, "core.get_config_values", []any{args}, nil)
	if err != nil {
		return nil, err
	}
	return resultStringMap(result, "core.get_config_values")
}

// GetEnabledPlugins lists the daemon's active plugins.
func (s *Session) GetEnabledPlugins(ctx context.Context) ([]string, error) {
	if err := s.require("core.get_enabled_plugins", authDefault); err != nil {
		return nil, err
	}
	result, err := s.Call(ctx, "core.get_enabled_plugins", nil, nil)
	if err != nil {
		return nil, err
	}
	return resultStringSlice(result, "core.get_enabled_plugins")
}

// EnablePlugin enables a daemon plugin.
func (s *Session) EnablePlugin(ctx context.Context, name string) (bool, error) {
	if err := s.require("core.enable_plugin", authDefault); err != nil {
		return false, err
	}
	result, err := s.Call(ctx, "core.enable_plugin", []any{name}, nil)
	if err != nil {
		return false, err
	}
	return resultBool(result, "core.enable_plugin")
}

// DisablePlugin disables a daemon plugin.
func (s *Session) DisablePlugin(ctx context.Context, name string) (bool, error) {
	if err := s.require("core.disable_plugin", authDefault); err != nil {
		return false, err
	}
	result, err := s.Call(ctx, "core.disable_plugin", []any{name}, nil)
	if err != nil {
		return false, err
	}
	return resultBool(result, "core.disable_plugin")
}

// Account management requires the admin tier.

// CreateAccount adds a daemon account at the given auth level.
func (s *Session) CreateAccount(ctx context.Context, username, password string, level AuthLevel) (bool, error) {
	if err := s.require("core.create_account", AuthAdmin); err != nil {
		return false, err
	}
	result, err := s.Call(ctx, "core.create_account", []any{username, password, int64(level)}, nil)
	if err != nil {
		return false, err
	}
	return resultBool(result, "core.create_account")
}

// RemoveAccount deletes a daemon account.
func (s *Session) RemoveAccount(ctx context.Context, username string) (bool, error) {
	if err := s.require("core.remove_account", AuthAdmin); err != nil {
		return false, err
	}
	result, err := s.Call(ctx, "core.remove_account", []any{username}, nil)
	if err != nil {
		return false, err
	}
	return resultBool(result, "core.remove_account")
}

// GetKnownAccounts lists the daemon's accounts.
func (s *Session) GetKnownAccounts(ctx context.Context) ([]map[string]any, error) {
	if err := s.require("core.get_known_accounts", AuthAdmin); err != nil {
		return nil, err
	}
	result, err := s.Call(ctx, "core.get_known_accounts", nil, nil)
	if err != nil {
		return nil, err
	}
	v, err := resultValue(result, "core.get_known_accounts")
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("core.get_known_accounts: result is %T, want list", v)
	}
	accounts := make([]map[string]any, len(items))
	for i, item := range items {
		account, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("core.get_known_accounts: element %d is %T, want dict", i, item)
		}
		accounts[i] = account
	}
	return accounts, nil
}
