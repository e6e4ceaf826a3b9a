package palette

import (
	"bytes"
	"html/template"
)

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>namemap palette</title>
<style>
div {
  width: 25px;
  height: 25px;
  display: inline-block;
}
</style>
</head>
<body>
{{range .Swatches}}<div title="{{.Title}}" style="background-color: {{.Color}}"></div>{{end}}
{{if .LiveReload}}<script>
(function () {
  var seen = 0;
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/api/v1/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "hello") { seen = msg.generation; return; }
    if (msg.type === "reload" && msg.generation > seen) {
      seen = msg.generation;
      // one generate run writes two files; wait for the second before reloading
      setTimeout(function () { location.reload(); }, 150);
    }
  };
})();
</script>{{end}}
</body>
</html>
`))

type swatch struct {
	Title string
	Color template.CSS
}

// PreviewOptions controls RenderPreview output.
type PreviewOptions struct {
	// LiveReload adds a script that reloads the page when the preview server
	// reports a changed artifact.
	LiveReload bool
}

// RenderPreview renders p as an HTML page of fixed-size swatches, one per color.
func RenderPreview(p Palette, opts PreviewOptions) ([]byte, error) {
	data := struct {
		Swatches   []swatch
		LiveReload bool
	}{LiveReload: opts.LiveReload}

	for _, color := range p {
		// Palette entries are generated hex values, safe in a CSS context.
		data.Swatches = append(data.Swatches, swatch{Title: color, Color: template.CSS(color)})
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
