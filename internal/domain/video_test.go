package domain

import "testing"

func TestVideoVisibleTo(t *testing.T) {
	tests := []struct {
		name     string
		video    Video
		viewerID int64
		want     bool
	}{
		{
			name:     "public video visible to anonymous",
			video:    Video{OwnerID: 1, IsPrivate: false},
			viewerID: 0,
			want:     true,
		},
		{
			name:     "public video visible to other user",
			video:    Video{OwnerID: 1, IsPrivate: false},
			viewerID: 2,
			want:     true,
		},
		{
			name:     "private video visible to owner",
			video:    Video{OwnerID: 1, IsPrivate: true},
			viewerID: 1,
			want:     true,
		},
		{
			name:     "private video hidden from other user",
			video:    Video{OwnerID: 1, IsPrivate: true},
			viewerID: 2,
			want:     false,
		},
		{
			name:     "private video hidden from anonymous",
			video:    Video{OwnerID: 1, IsPrivate: true},
			viewerID: 0,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.video.VisibleTo(tt.viewerID); got != tt.want {
				t.Errorf("VisibleTo(%d) = %v, want %v", tt.viewerID, got, tt.want)
			}
		})
	}
}

func TestIsOwner(t *testing.T) {
	if IsOwner(0, 0) {
		t.Error("anonymous actor must never be an owner")
	}
	if IsOwner(0, 1) {
		t.Error("anonymous actor must never own another user's resource")
	}
	if !IsOwner(1, 1) {
		t.Error("matching non-zero IDs should be owner")
	}
	if IsOwner(1, 2) {
		t.Error("mismatched IDs should not be owner")
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle(""); err != ErrVideoTitleEmpty {
		t.Errorf("empty title: got %v, want %v", err, ErrVideoTitleEmpty)
	}
	if err := ValidateTitle("My video"); err != nil {
		t.Errorf("valid title: unexpected error %v", err)
	}
}

func TestNewVideoDefaults(t *testing.T) {
	v := NewVideo(7, "title", "desc")
	if v.OwnerID != 7 {
		t.Errorf("owner = %d, want 7", v.OwnerID)
	}
	if v.IsPrivate {
		t.Error("new videos should default to public")
	}
	if v.Likes != 0 {
		t.Errorf("likes = %d, want 0", v.Likes)
	}
	if v.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated ID")
	}
}
