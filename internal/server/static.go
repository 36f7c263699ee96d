package server

import (
	"net/http"
	"os"
	"path"
	"strings"
)

// publicFS hides dotfiles and directories that have no index.html so the
// file server never renders a listing or leaks files like .env.
type publicFS struct {
	fs http.FileSystem
}

func (p publicFS) Open(name string) (http.File, error) {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return nil, os.ErrNotExist
		}
	}

	f, err := p.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		idx, err := p.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			f.Close()
			return nil, os.ErrNotExist
		}
		idx.Close()
	}
	return f, nil
}

// staticHandler serves the public dir. Only GET and HEAD are served; any
// other method gets the same 404 as a missing file.
func staticHandler(dir string) http.Handler {
	fsys := publicFS{fs: http.Dir(dir)}
	files := http.FileServer(fsys)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		// http.FileServer redirects .../index.html to the directory
		if strings.HasSuffix(r.URL.Path, "/index.html") {
			serveFile(w, r, fsys, r.URL.Path)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func serveFile(w http.ResponseWriter, r *http.Request, fsys http.FileSystem, name string) {
	f, err := fsys.Open(path.Clean(name))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, st.Name(), st.ModTime(), f)
}
