/*
   DragonDMK - DragonDOS disk image tool
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of DragonDMK.

   DragonDMK is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   DragonDMK is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with DragonDMK. If not, see <http://www.gnu.org/licenses/>.
*/

package control

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
	"github.com/xelalexv/dragondmk/pkg/disk/format"
)

//
type APIServer interface {
	Serve() error
	Stop() error
}

// NewAPIServer creates an API server that gives read access to disk.
func NewAPIServer(addr string, disk *dragondos.Disk) APIServer {
	return &api{address: addr, disk: disk}
}

//
type api struct {
	address string
	disk    *dragondos.Disk
	server  *http.Server
}

//
func (a *api) Serve() error {

	addr := a.address
	if len(strings.Split(addr, ":")) < 2 {
		addr = fmt.Sprintf("%s:8888", a.address)
	}

	log.Infof("DragonDMK API starts listening on %s", addr)
	a.server = &http.Server{Addr: addr, Handler: a.router()}

	err := a.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

//
func (a *api) Stop() error {
	if a.server != nil {
		log.Info("API server stopping...")
		err := a.server.Shutdown(context.Background())
		a.server = nil
		return err
	}
	return nil
}

//
func (a *api) router() *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	addRoute(router, "info", "GET", "/info", a.info)
	addRoute(router, "dir", "GET", "/dir", a.dir)
	addRoute(router, "file", "GET", "/file/{name}", a.file)
	addRoute(router, "header", "GET", "/file/{name}/header", a.header)
	addRoute(router, "cas", "GET", "/file/{name}/cas", a.cas)
	addRoute(router, "vdk", "GET", "/vdk", a.vdk)

	return router
}

//
func addRoute(r *mux.Router, name, method, pattern string,
	handler http.HandlerFunc) {
	r.Methods(method).
		Path(pattern).
		Name(name).
		Handler(requestLogger(handler, name))
}

//
func requestLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		log.WithFields(log.Fields{
			"remote": r.RemoteAddr,
			"method": r.Method,
			"path":   r.RequestURI,
		}).Debugf("API BEGIN | %s", name)

		start := time.Now()
		inner.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"remote":   r.RemoteAddr,
			"method":   r.Method,
			"path":     r.RequestURI,
			"duration": time.Since(start),
		}).Debugf("API END   | %s", name)
	})
}

//
func (a *api) info(w http.ResponseWriter, req *http.Request) {

	info := a.disk.Image().Info()

	if wantsJSON(req) {
		sendJSONReply(info, http.StatusOK, w)
	} else {
		var out bytes.Buffer
		info.Emit(&out)
		sendReply(out.Bytes(), http.StatusOK, w)
	}
}

//
func (a *api) dir(w http.ResponseWriter, req *http.Request) {

	dir, err := a.disk.Dir()
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(dir, http.StatusOK, w)
	} else {
		var out bytes.Buffer
		dir.Emit(&out)
		sendReply(out.Bytes(), http.StatusOK, w)
	}
}

//
func (a *api) file(w http.ResponseWriter, req *http.Request) {
	if _, data := a.readFile(w, req); data != nil {
		sendBinaryReply(data, w)
	}
}

//
func (a *api) header(w http.ResponseWriter, req *http.Request) {

	_, data := a.readFile(w, req)
	if data == nil {
		return
	}

	h, err := dragondos.ParseFileHeader(data)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(h, http.StatusOK, w)
	} else {
		var out bytes.Buffer
		h.Emit(&out)
		sendReply(out.Bytes(), http.StatusOK, w)
	}
}

//
func (a *api) cas(w http.ResponseWriter, req *http.Request) {

	f, data := a.readFile(w, req)
	if data == nil {
		return
	}

	x, err := format.NewExport(strings.TrimRight(f.Name, " "), data)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	var out bytes.Buffer
	if handleError(format.NewCAS().WriteFile(x, &out),
		http.StatusInternalServerError, w) {
		return
	}

	sendBinaryReply(out.Bytes(), w)
}

//
func (a *api) vdk(w http.ResponseWriter, req *http.Request) {

	var out bytes.Buffer
	if handleError(format.NewVDK().WriteImage(a.disk.Image(), &out),
		http.StatusInternalServerError, w) {
		return
	}

	sendBinaryReply(out.Bytes(), w)
}

// readFile reads the file named in the request path. On error, a reply has
// already been sent and the returned data is nil.
func (a *api) readFile(w http.ResponseWriter,
	req *http.Request) (*dragondos.File, []byte) {

	name, ext := dragondos.SplitName(mux.Vars(req)["name"])

	f, err := a.disk.Find(name, ext)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dragondos.ErrFileNotFound) {
			status = http.StatusNotFound
		}
		handleError(err, status, w)
		return nil, nil
	}

	data, err := a.disk.Reconstruct(f.Extents)
	if handleError(err, http.StatusInternalServerError, w) {
		return nil, nil
	}

	if data == nil {
		data = []byte{}
	}
	return f, data
}

//
func setHeaders(h http.Header, json bool) {
	if json {
		h.Set("Content-Type", "application/json")
	} else {
		h.Set("Content-Type", "text/plain")
	}
}

//
func handleError(e error, statusCode int, w http.ResponseWriter) bool {

	if e == nil {
		return false
	}

	log.Errorf("%v", e)

	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(fmt.Sprintf("%v\n", e))); err != nil {
		log.Errorf("problem writing error: %v", err)
	}

	return true
}

//
func sendReply(body []byte, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := fmt.Fprintf(w, "%s\n", body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendBinaryReply(body []byte, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendJSONReply(obj interface{}, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), true)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		log.Errorf("problem writing reply: %v", err)
	}
}

//
func wantsJSON(req *http.Request) bool {
	return req.Header.Get("Content-Type") == "application/json" ||
		strings.Contains(req.Header.Get("Accept"), "application/json")
}
