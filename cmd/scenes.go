package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the registered scenes and the accepted option values.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	fmt.Fprint(ctx.App.Writer, formatSceneList())
	return nil
}

func formatSceneList() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()

	fmt.Fprintf(&buf, "\npatterns:    %v\n", core.PatternNames())
	fmt.Fprintf(&buf, "integrators: %v\n", integrator.Names())
	fmt.Fprintf(&buf, "splits:      %v\n", []string{geometry.SplitRandomAxis, geometry.SplitSurfaceArea})
	return buf.String()
}
