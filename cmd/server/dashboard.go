package main

import (
	"net/http"
)

func dashboardHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Guardrail Dashboard</title>
    <style>
        body {
            margin: 0;
            font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
            background: #111827;
            color: #e5e7eb;
        }
        main { max-width: 960px; margin: 0 auto; padding: 24px; }
        header { display: flex; justify-content: space-between; align-items: baseline; }
        header h1 { font-size: 1.6em; margin: 0 0 4px; }
        header small { color: #9ca3af; }
        section { margin-top: 28px; }
        section h2 {
            font-size: 0.85em;
            text-transform: uppercase;
            letter-spacing: 1px;
            color: #9ca3af;
            border-bottom: 1px solid #374151;
            padding-bottom: 6px;
        }
        .row { display: flex; gap: 16px; flex-wrap: wrap; }
        .tile {
            flex: 1 1 180px;
            background: #1f2937;
            border-left: 4px solid #6b7280;
            padding: 14px 16px;
        }
        .tile b { display: block; font-size: 2em; margin-top: 6px; }
        .tile.ok { border-color: #10b981; }
        .tile.notice { border-color: #f59e0b; }
        .tile.bad { border-color: #ef4444; }
        table { width: 100%; border-collapse: collapse; margin-top: 8px; }
        td, th { text-align: left; padding: 8px; border-bottom: 1px solid #374151; }
        td.empty { color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<main>
    <header>
        <div>
            <h1>guardrail</h1>
            <small>log throttling and upload validation</small>
        </div>
        <small>up <span id="uptime">0</span>s, refresh in <span id="countdown">2</span>s</small>
    </header>

    <section>
        <h2>Throttled logger</h2>
        <div class="row">
            <div class="tile ok">emitted <b id="logsEmitted">0</b></div>
            <div class="tile notice">throttle notices <b id="throttleNotices">0</b></div>
            <div class="tile bad">dropped <b id="logsDropped">0</b> <span id="dropRate">0%</span></div>
            <div class="tile">warn / error <b id="severities">0 / 0</b></div>
        </div>
    </section>

    <section>
        <h2>Uploads</h2>
        <div class="row">
            <div class="tile ok">accepted <b id="uploadsAccepted">0</b></div>
            <div class="tile bad">rejected <b id="uploadsRejected">0</b></div>
        </div>
        <table>
            <thead><tr><th>Rejection reason</th><th>Count</th></tr></thead>
            <tbody id="rejectionsTable">
                <tr><td colspan="2" class="empty">loading</td></tr>
            </tbody>
        </table>
    </section>
</main>

<script>
    const refreshSeconds = 2;
    let countdown = refreshSeconds;

    function setText(id, value) {
        document.getElementById(id).textContent = value;
    }

    async function fetchStats() {
        try {
            const response = await fetch('/stats');
            render(await response.json());
        } catch (error) {
            console.error('Failed to fetch stats:', error);
        }
    }

    function render(s) {
        setText('uptime', s.uptime_seconds);
        setText('logsEmitted', s.logs_emitted.toLocaleString());
        setText('throttleNotices', s.throttle_notices.toLocaleString());
        setText('logsDropped', s.logs_dropped.toLocaleString());
        setText('severities', s.warnings.toLocaleString() + ' / ' + s.errors.toLocaleString());
        setText('uploadsAccepted', s.uploads_accepted.toLocaleString());
        setText('uploadsRejected', s.uploads_rejected.toLocaleString());

        const total = s.logs_emitted + s.throttle_notices + s.logs_dropped;
        setText('dropRate', total > 0 ? ((s.logs_dropped / total) * 100).toFixed(1) + '%' : '0%');

        const rows = (s.rejections || []).map(r =>
            '<tr><td>' + r.reason + '</td><td>' + r.count + '</td></tr>');
        document.getElementById('rejectionsTable').innerHTML = rows.length > 0
            ? rows.join('')
            : '<tr><td colspan="2" class="empty">no rejected uploads</td></tr>';
    }

    setInterval(() => {
        countdown--;
        if (countdown <= 0) {
            countdown = refreshSeconds;
            fetchStats();
        }
        setText('countdown', countdown);
    }, 1000);

    fetchStats();
</script>
</body>
</html>`
