package handlers

// Dashboard shell. All drawing decisions live server-side in the render
// package; this page clears every layer and redraws exactly what
// /api/map returns, so a refresh is always a full replace.
const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Earthquake Risk Dashboard</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'Segoe UI',sans-serif;background:#f4f6f8;color:#2c3e50;font-size:14px}
header{background:#2c3e50;color:#fff;padding:12px 20px;display:flex;align-items:center;gap:16px}
header h1{font-size:18px;font-weight:600}
header button{margin-left:auto;background:#3498db;color:#fff;border:0;border-radius:4px;padding:8px 14px;cursor:pointer}
header button:hover{background:#2980b9}
header .backend{color:#95a5a6;font-size:12px}
main{display:flex;gap:12px;padding:12px}
#mapid{flex:2;height:78vh;border-radius:6px}
#earthquake-list{flex:1;max-height:78vh;overflow-y:auto;background:#fff;border-radius:6px;padding:10px}
.earthquake-item{display:flex;gap:10px;padding:8px;border-bottom:1px solid #ecf0f1}
.magnitude-box{min-width:46px;text-align:center;font-weight:700;color:#fff;border-radius:4px;padding:8px 0}
.mag-high{background:#e74c3c}
.mag-medium{background:#f39c12}
.mag-low{background:#2ecc71}
.details .location{font-weight:600}
.details .info{color:#7f8c8d;font-size:12px}
.notice{padding:12px;color:#7f8c8d}
.error{padding:12px;color:#e74c3c}
</style>
</head>
<body>
<header>
<h1>Earthquake Risk Dashboard</h1>
<span class="backend">analysis: {{.Backend}}</span>
<button id="refreshButton">Refresh</button>
</header>
<main>
<div id="mapid"></div>
<div id="earthquake-list"><p class="notice">Loading risk analysis...</p></div>
</main>
<script>
const map = L.map('mapid').setView([39.9, 35.8], 6);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
	maxZoom: 19,
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

const layers = L.layerGroup().addTo(map);
const list = document.getElementById('earthquake-list');

function refresh() {
	list.innerHTML = '<p class="notice">Loading risk analysis...</p>';
	fetch('/api/map')
		.then(r => r.json())
		.then(draw)
		.catch(err => {
			list.innerHTML = '<p class="error">Could not reach the dashboard server. (' + err.message + ')</p>';
		});
}

function draw(doc) {
	layers.clearLayers();
	list.innerHTML = '';

	doc.map.fault_lines.forEach(f => {
		L.polyline(f.latlons, {color: f.color, weight: f.weight, opacity: f.opacity, dashArray: f.dash})
			.bindPopup(f.popup).addTo(layers);
	});
	doc.map.events.forEach(e => {
		L.circleMarker(e.latlon, {radius: e.radius, color: e.color, fillColor: e.fill_color,
			fillOpacity: e.fill_opacity, weight: e.weight}).bindPopup(e.popup).addTo(layers);
	});
	doc.map.regions.forEach(rg => {
		L.circleMarker(rg.latlon, {radius: rg.radius, color: rg.color, fillColor: rg.fill_color,
			fillOpacity: rg.fill_opacity, weight: rg.weight}).bindPopup(rg.popup).addTo(layers);
	});

	if (doc.map.fit) {
		map.fitBounds([doc.map.fit.south_west, doc.map.fit.north_east], {padding: [50, 50]});
	} else {
		map.setView(doc.map.center, doc.map.zoom);
	}

	if (doc.list.error) {
		list.innerHTML = '<p class="error">' + doc.list.error + '</p>';
		return;
	}
	if (doc.list.notice) {
		list.innerHTML = '<p class="notice">' + doc.list.notice + '</p>';
		return;
	}
	doc.list.items.forEach(item => {
		const div = document.createElement('div');
		div.className = 'earthquake-item';
		const distance = item.distance_km ? ' | ' + item.distance_km.toFixed(1) + ' km away' : '';
		div.innerHTML =
			'<div class="magnitude-box ' + item.class + '">' + item.magnitude.toFixed(1) + '</div>' +
			'<div class="details"><p class="location">' + item.location + '</p>' +
			'<p class="info">' + item.date + ' ' + item.time + ' | Depth: ' + item.depth + ' km' + distance + '</p></div>';
		list.appendChild(div);
	});
}

document.getElementById('refreshButton').addEventListener('click', refresh);
refresh();
</script>
</body>
</html>
`
