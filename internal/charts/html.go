package charts

import (
	"bytes"
	"html/template"
)

var figureTemplate = template.Must(template.New("figure").Parse(
	`<div id="{{.ID}}" class="plotly-graph-div" style="height:{{.Height}}px; width:100%;"></div>
<script src="{{.CDN}}" charset="utf-8"></script>
<script type="text/javascript">Plotly.newPlot({{.ID}}, {{.Data}}, {{.Layout}}, {"responsive": true});</script>`))

var placeholderTemplate = template.Must(template.New("placeholder").Parse(
	`<div class='alert alert-info mb-0'>{{.}}</div>`))

type figureView struct {
	ID     string
	Height int
	CDN    string
	Data   []map[string]any
	Layout map[string]any
}

// CDNURL returns the Plotly bundle URL for a version
func CDNURL(version string) string {
	return "https://cdn.plot.ly/plotly-" + version + ".min.js"
}

func renderFigure(key string, fig *Figure, version string) (string, error) {
	height, _ := fig.Layout["height"].(int)
	if height <= 0 {
		height = 420
	}
	var buf bytes.Buffer
	err := figureTemplate.Execute(&buf, figureView{
		ID:     "chart-" + key,
		Height: height,
		CDN:    CDNURL(version),
		Data:   fig.Data,
		Layout: fig.Layout,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderPlaceholder(reason string) string {
	var buf bytes.Buffer
	if err := placeholderTemplate.Execute(&buf, reason); err != nil {
		return ""
	}
	return buf.String()
}
