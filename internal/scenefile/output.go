package scenefile

import (
	"encoding/json"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	scene "github.com/grindlemire/go-scene"
)

// FrameOutput is the printable form of one rendered frame. Node ids are
// left out so output is stable across runs.
type FrameOutput struct {
	Frame uint64       `json:"frame"`
	Nodes []NodeOutput `json:"nodes"`
}

// NodeOutput is the printable form of one node snapshot. Values are rounded
// to four decimals.
type NodeOutput struct {
	Name     string         `json:"name"`
	Depth    int            `json:"depth"`
	Position mgl32.Vec3     `json:"position"`
	Color    mgl32.Vec4     `json:"color"`
	Size     mgl32.Vec3     `json:"size"`
	Visible  bool           `json:"visible"`
	DrawMode scene.DrawMode `json:"drawMode"`
}

// NewFrameOutput converts what a Renderer receives into FrameOutput.
func NewFrameOutput(info scene.FrameInfo, nodes []scene.NodeSnapshot) FrameOutput {
	out := FrameOutput{
		Frame: info.Number,
		Nodes: make([]NodeOutput, len(nodes)),
	}
	for i, n := range nodes {
		out.Nodes[i] = NodeOutput{
			Name:     n.Name,
			Depth:    n.Depth,
			Position: mgl32.Vec3{round(n.Position[0]), round(n.Position[1]), round(n.Position[2])},
			Color:    mgl32.Vec4{round(n.Color[0]), round(n.Color[1]), round(n.Color[2]), round(n.Color[3])},
			Size:     mgl32.Vec3{round(n.Size[0]), round(n.Size[1]), round(n.Size[2])},
			Visible:  n.Visible,
			DrawMode: n.DrawMode,
		}
	}
	return out
}

func round(f float32) float32 {
	r := float32(math.Round(float64(f)*1e4) / 1e4)
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}

// WriteJSON writes frames as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
