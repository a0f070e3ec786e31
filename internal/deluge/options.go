package deluge

// TorrentOptions are the per-torrent settings accepted by the daemon's add
// and set_torrent_options calls. Nil fields are omitted from the request so
// the daemon applies its own defaults.
type TorrentOptions struct {
	DownloadLocation    *string
	AddPaused           *bool
	PreAllocateStorage  *bool
	PrioritizeFirstLast *bool
	SequentialDownload  *bool
	SuperSeeding        *bool
	MoveCompleted       *bool
	MoveCompletedPath   *string
	MaxConnections      *int
	MaxUploadSlots      *int
	MaxDownloadSpeed    *float64
	MaxUploadSpeed      *float64
}

func (o *TorrentOptions) dict() map[string]any {
	opts := map[string]any{}
	if o == nil {
		return opts
	}
	setString := func(key string, v *string) {
		if v != nil {
			opts[key] = *v
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			opts[key] = *v
		}
	}
	setInt := func(key string, v *int) {
		if v != nil {
			opts[key] = int64(*v)
		}
	}
	setFloat := func(key string, v *float64) {
		if v != nil {
			opts[key] = *v
		}
	}
	setString("download_location", o.DownloadLocation)
	setBool("add_paused", o.AddPaused)
	setBool("pre_allocate_storage", o.PreAllocateStorage)
	setBool("prioritize_first_last_pieces", o.PrioritizeFirstLast)
	setBool("sequential_download", o.SequentialDownload)
	setBool("super_seeding", o.SuperSeeding)
	setBool("move_completed", o.MoveCompleted)
	setString("move_completed_path", o.MoveCompletedPath)
	setInt("max_connections", o.MaxConnections)
	setInt("max_upload_slots", o.MaxUploadSlots)
	setFloat("max_download_speed", o.MaxDownloadSpeed)
	setFloat("max_upload_speed", o.MaxUploadSpeed)
	return opts
}
