package dashboard

import "net/http"

// handleIndex serves the single-page dashboard shell. All data arrives via
// the JSON API; the map and charts are embedded as live documents.
func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Hospital Placement Dashboard</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 1.5rem; background: #fafafa; color: #222; }
  h1 { font-size: 1.4rem; }
  form { display: flex; gap: 0.75rem; align-items: flex-end; flex-wrap: wrap; margin-bottom: 1rem; }
  label { display: flex; flex-direction: column; font-size: 0.8rem; color: #555; }
  input { width: 6rem; padding: 0.3rem; }
  button { padding: 0.45rem 1rem; cursor: pointer; }
  #error { color: #b00020; margin: 0.5rem 0; min-height: 1.2rem; }
  #kpis { display: flex; gap: 0.75rem; flex-wrap: wrap; margin-bottom: 1rem; }
  .card { background: #fff; border: 1px solid #ddd; border-radius: 6px; padding: 0.6rem 1rem; min-width: 9rem; }
  .card .value { font-size: 1.3rem; font-weight: 600; }
  .card .caption { font-size: 0.75rem; color: #777; }
  .panels { display: grid; grid-template-columns: 660px 1fr; gap: 1rem; }
  iframe, object { border: 1px solid #ddd; background: #fff; width: 100%; }
</style>
</head>
<body>
<h1>Hospital Placement Dashboard</h1>
<form id="params">
  <label>Grid size (m) <input type="number" name="m" value="20" min="1" max="200"></label>
  <label>Neighborhoods (n) <input type="number" name="n" value="80" min="1" max="5000"></label>
  <label>Hospitals (k) <input type="number" name="k" value="4" min="1" max="50"></label>
  <button type="submit" id="run">Run simulation</button>
  <button type="button" id="pretrained">Load pretrained</button>
  <a href="/plots/map.png" download>Download map PNG</a>
</form>
<div id="error"></div>
<div id="kpis"></div>
<div class="panels">
  <object id="map" data="/map.svg" type="image/svg+xml" height="640"></object>
  <div>
    <iframe id="clusters" src="/charts/clusters" height="400"></iframe>
    <iframe id="histogram" src="/charts/histogram" height="400"></iframe>
  </div>
</div>
<script>
const form = document.getElementById('params');
const runBtn = document.getElementById('run');
const errBox = document.getElementById('error');
const kpiBox = document.getElementById('kpis');

function refreshPanels() {
  document.getElementById('map').data = '/map.svg?t=' + Date.now();
  document.getElementById('clusters').src = '/charts/clusters?t=' + Date.now();
  document.getElementById('histogram').src = '/charts/histogram?t=' + Date.now();
}

function renderKPIs(cards) {
  kpiBox.innerHTML = '';
  for (const c of cards || []) {
    const div = document.createElement('div');
    div.className = 'card';
    div.innerHTML = '<div>' + c.title + '</div><div class="value">' + c.value +
      '</div><div class="caption">' + c.caption + '</div>';
    kpiBox.appendChild(div);
  }
}

form.addEventListener('submit', async (ev) => {
  ev.preventDefault();
  const data = new FormData(form);
  const body = { m: +data.get('m'), n: +data.get('n'), k: +data.get('k') };
  runBtn.disabled = true;
  errBox.textContent = '';
  try {
    const resp = await fetch('/api/runs', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body),
    });
    const payload = await resp.json();
    if (!resp.ok) {
      errBox.textContent = payload.error || 'simulation request failed';
      return;
    }
    renderKPIs(payload.kpi_cards);
    refreshPanels();
  } catch (e) {
    errBox.textContent = 'simulation request failed';
  } finally {
    runBtn.disabled = false;
  }
});

document.getElementById('pretrained').addEventListener('click', async () => {
  errBox.textContent = '';
  const resp = await fetch('/api/pretrained');
  const payload = await resp.json();
  if (!resp.ok) {
    errBox.textContent = payload.error || 'no pretrained model available';
    return;
  }
  errBox.textContent = payload.description + ' (k=' + payload.k + ')';
});
</script>
</body>
</html>
`
