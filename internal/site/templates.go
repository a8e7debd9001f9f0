package site

// layoutTemplate wraps every page. Pages define "title" and "main".
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{template "title" .}}</title>
  <link rel="stylesheet" href="{{.Root}}css/main.css">
</head>
<body class="page-{{.Page}}">
  <nav style="{{background .View.Accent}}" data-color="{{.View.Accent.Name}}">
    <a id="navLogo" class="nav-logo" href="{{.Root}}index.html">Portfolio</a>
  </nav>
  <main>
{{template "main" .}}
  </main>
  <footer>
    <a id="footerLogo" class="footer-logo" href="{{.Root}}index.html">Portfolio</a>
  </footer>
{{- if .LiveReload}}
  <script>
    (function () {
      var scheme = location.protocol === "https:" ? "wss://" : "ws://";
      var ws = new WebSocket(scheme + location.host + {{.LiveReload}});
      ws.onmessage = function (e) {
        try {
          if (JSON.parse(e.data).type === "reload") location.reload();
        } catch (err) {}
      };
    })();
  </script>
{{- end}}
</body>
</html>
{{end}}`

const homeTemplate = `{{define "title"}}Portfolio{{end}}
{{define "main"}}
    <section class="work-section" id="selectedWork">
      <h1 class="headline-h1">Selected Work</h1>
      <div class="work-grid" id="selectedWorkGrid">
        {{- range .View.Selected}}{{template "thumbnail" .}}{{end}}
      </div>
    </section>
    <section class="work-section" id="personalWork">
      <h1 class="headline-h1">Personal Work</h1>
      <div class="work-grid" id="personalWorkGrid">
        {{- range .View.Personal}}{{template "thumbnail" .}}{{end}}
      </div>
    </section>
{{end}}
{{define "thumbnail"}}
        <a class="thumbnail-link" href="{{.Href}}">
          <article class="thumbnail-container" data-project-id="{{.ID}}">
            <div class="thumbnail-content">
              <h2 class="thumbnail-title">{{.Title}}</h2>
              <div class="thumbnail-meta">
                <p class="thumbnail-subtitle">{{.Subtitle}}</p>
                <p class="thumbnail-year">{{.Year}}</p>
              </div>
            </div>
            <div class="thumbnail-images">
              {{- range .Images}}
              <img src="{{.Src}}" alt="{{.Alt}}" class="thumbnail-image" loading="lazy">
              {{- end}}
            </div>
          </article>
        </a>
{{- end}}`

const passwordTemplate = `{{define "title"}}Protected work{{end}}
{{define "main"}}
    <section class="password-section">
      <h1 class="headline-h1">This work is protected</h1>
      <form id="passwordForm" method="post" action="{{.Self}}">
        <input type="hidden" name="project" value="{{.View.ProjectID}}">
        <input type="password" id="passwordInput" name="password" autocomplete="current-password"
          {{- if .View.WrongPassword}} class="error"{{end}} autofocus>
        <p id="errorMessage" class="error-message"{{if not .View.WrongPassword}} style="display: none"{{end}}>Incorrect password</p>
        <button type="submit">View project</button>
      </form>
      <a class="back-link" href="{{.View.HomeHref}}">Back</a>
    </section>
{{- if .View.WrongPassword}}
    <script>
      setTimeout(function () {
        document.getElementById("errorMessage").style.display = "none";
        document.getElementById("passwordInput").classList.remove("error");
      }, {{.ErrorTimeout}});
    </script>
{{- end}}
{{end}}`

const detailTemplate = `{{define "title"}}{{.View.Title}}{{end}}
{{define "main"}}
    <header class="detail-header">
      <h1 class="headline-h1" id="detailTitle">{{.View.Title}}</h1>
      <p class="body-b1" id="detailSubtitle">{{.View.Subtitle}}</p>
      <p class="body-b2" id="detailYear">{{.View.Year}}</p>
    </header>
    <section class="detail-intro">
      <dl>
        <dt>Role</dt><dd id="introRole">{{.View.Introduction.Role}}</dd>
        <dt>Timeline</dt><dd id="introTimeline">{{.View.Introduction.Timeline}}</dd>
        <dt>Team</dt><dd id="introTeam">{{.View.Introduction.Team}}</dd>
      </dl>
      <p class="body-b1" id="introDescription">{{.View.Introduction.Description}}</p>
    </section>
    <section class="detail-body" id="bodyContainer">
      {{- range .View.Body}}{{.HTML}}{{end}}
    </section>
    <section class="detail-images" id="imagesContainer">
      {{- range .View.Images}}
      <figure class="detail-image">
        <img src="{{.Src}}" alt="{{.Alt}}" loading="lazy">
        {{- if .Caption}}
        <figcaption class="image-caption">{{.Caption}}</figcaption>
        {{- end}}
      </figure>
      {{- end}}
    </section>
    {{- with .View.Next}}
    <section class="next-project">
      <a id="nextLink" href="{{.Href}}">
        <p class="body-b2">Next project</p>
        <h2 class="headline-h2" id="nextTitle">{{.Title}}</h2>
        <img id="nextThumbnail" src="{{.Thumbnail}}" alt="{{.ThumbnailAlt}}" loading="lazy">
      </a>
    </section>
    {{- end}}
{{end}}`
