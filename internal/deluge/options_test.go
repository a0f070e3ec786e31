package deluge

import (
	"reflect"
	"testing"
)

func TestTorrentOptionsDict(t *testing.T) {
	if got := (*TorrentOptions)(nil).dict(); len(got) != 0 {
		t.Fatalf("nil options produced %v", got)
	}
	if got := (&TorrentOptions{}).dict(); len(got) != 0 {
		t.Fatalf("empty options produced %v", got)
	}

	dir := "/srv/downloads"
	paused := true
	conns := 80
	speed := 512.0
	opts := &TorrentOptions{
		DownloadLocation: &dir,
		AddPaused:        &paused,
		MaxConnections:   &conns,
		MaxDownloadSpeed: &speed,
	}
	want := map[string]any{
		"download_location":  "/srv/downloads",
		"add_paused":         true,
		"max_connections":    int64(80),
		"max_download_speed": 512.0,
	}
	if got := opts.dict(); !reflect.DeepEqual(got, want) {
		t.Fatalf("dict() = %v, want %v", got, want)
	}
}
