package wiki

import "testing"

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   Marker
		wantOK bool
	}{
		{name: "plain", file: "Stone.png", want: Marker{}, wantOK: true},
		{name: "south", file: "Furnace_(S).png", want: Marker{Orientation: "S"}, wantOK: true},
		{name: "east west with version", file: "Oak_Fence_(EW)_JE4.png", want: Marker{Orientation: "EW", Version: 4, Versioned: true}, wantOK: true},
		{name: "orientation with digits", file: "Rail_(N1).png", want: Marker{Orientation: "N"}, wantOK: true},
		{name: "layers", file: "Snow_(8_layers).png", want: Marker{Layers: true}, wantOK: true},
		{name: "layers word first", file: "Snow_(layers_2)_BE3.png", want: Marker{Layers: true, Version: 3, Versioned: true}, wantOK: true},
		{name: "first version wins", file: "Acacia_Log_(UD)_JE5_BE3.png", want: Marker{Orientation: "UD", Version: 5, Versioned: true}, wantOK: true},
		{name: "empty qualifier", file: "Stone_().png", wantOK: false},
		{name: "unknown qualifier", file: "Conduit_(open).png", wantOK: false},
		{name: "digits only", file: "Stone_(1).png", wantOK: false},
		{name: "lower case direction", file: "Furnace_(s).png", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMarker(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("ParseMarker(%q) ok = %v, want %v", tt.file, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseMarker(%q) = %+v, want %+v", tt.file, got, tt.want)
			}
		})
	}
}

func TestMarkerFaces(t *testing.T) {
	tests := []struct {
		orientation string
		dir         string
		want        bool
	}{
		{orientation: "EW", dir: "EW", want: true},
		{orientation: "WE", dir: "EW", want: true},
		{orientation: "S", dir: "S", want: true},
		{orientation: "NS", dir: "S", want: false},
		{orientation: "E", dir: "EW", want: false},
		{orientation: "", dir: "S", want: false},
	}

	for _, tt := range tests {
		if got := (Marker{Orientation: tt.orientation}).Faces(tt.dir); got != tt.want {
			t.Errorf("Marker{%q}.Faces(%q) = %v, want %v", tt.orientation, tt.dir, got, tt.want)
		}
	}
}
