// SPDX-License-Identifier: MIT
package handlers

import (
	"fmt"
	"html"
	"strings"

	"github.com/janayne/salon/internal/portfolio"
	"github.com/janayne/salon/internal/theme"
)

const defaultSalonName = "Janayne Nails"

// publicPage is the visitor page. The theme applier fills in the salon name,
// WhatsApp links and hero image.
const publicPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>%s</title>
	<link rel="stylesheet" href="/theme.css">
</head>
<body>
	<nav class="nav-glass">
		<a href="/" class="salon-name">%s</a>
		<a class="whatsapp-link btn-global" href="https://wa.me/%s">Agendar</a>
	</nav>
	<header class="hero">
		<img id="hero-parallax-img" src="assets/foto1.jpg" alt="">
		<h1 class="salon-name">%s</h1>
	</header>
	<section id="portfolio">
		<div class="portfolio-filters">%s</div>
		<div id="portfolio-grid" class="portfolio-grid">%s</div>
	</section>
	<a class="whatsapp-link whatsapp-float" href="https://wa.me/%s" aria-label="WhatsApp">WhatsApp</a>
	<footer>
		<p class="salon-name">%s</p>
		<a href="/admin/login">Área administrativa</a>
	</footer>
</body>
</html>
`

const loginPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Entrar</title>
	<link rel="stylesheet" href="/theme.css">
</head>
<body>
	<form method="POST" action="/admin/login" class="login-form">
		%s
		<label for="password">Senha</label>
		<input type="password" id="password" name="password" autofocus required>
		%s
		<button type="submit" class="btn-global">Entrar</button>
	</form>
</body>
</html>
`

const adminPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta name="csrf-token" content="%s">
	<title>Painel</title>
	<link rel="stylesheet" href="/theme.css">
</head>
<body>
	<nav class="nav-glass">
		<span class="salon-name">%s</span>
		<form method="POST" action="/admin/logout">%s<button type="submit">Sair</button></form>
	</nav>
	<section id="settings">
		<img id="hero-preview" src="%s" alt="">
		<div class="color-slots">%s</div>
	</section>
	<section id="admin-portfolio">
		<datalist id="category-options">%s</datalist>
		<div id="admin-grid" class="portfolio-grid">%s</div>
	</section>
	<script>
	document.addEventListener('click', async (e) => {
		const btn = e.target.closest('.btn-delete');
		if (!btn) return;
		const token = document.querySelector('meta[name="csrf-token"]').content;
		const res = await fetch('/admin/api/portfolio/' + btn.dataset.id, {method: 'DELETE', headers: {'X-CSRF-Token': token}});
		if (res.ok) btn.closest('.card-item').remove();
	});
	</script>
</body>
</html>
`

func renderFilters(categories []string, active string) string {
	var b strings.Builder
	all := append([]string{"Todos"}, categories...)
	for _, c := range all {
		class := "filter-btn"
		if c == active || (c == "Todos" && portfolio.IsAll(active)) {
			class += " active"
		}
		fmt.Fprintf(&b, `<a class="%s" href="/?category=%s">%s</a>`,
			class, html.EscapeString(queryEscape(c)), html.EscapeString(c))
	}
	return b.String()
}

func renderColorSlots(values map[string]string) string {
	var b strings.Builder
	for _, slot := range theme.Slots() {
		value := values[slot.Setting]
		if value == "" {
			value = slot.Default
		}
		fmt.Fprintf(&b, `<button type="button" class="color-slot" data-slot="%s" data-default="%s" style="background:%s"></button>`,
			slot.Setting, slot.Default, html.EscapeString(value))
	}
	return b.String()
}

func renderOptions(categories []string) string {
	var b strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&b, `<option value="%s">`, html.EscapeString(c))
	}
	return b.String()
}
