package routes

import (
	"net/http"

	"gantt-go/app/controllers"
	"gantt-go/app/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterRoutes sets up all routes for the application. Paths the API does
// not claim are served from staticDir.
func RegisterRoutes(router *mux.Router, gantt *controllers.GanttController, staticDir string, log *zap.SugaredLogger) {
	router.Use(middleware.RequestLogger(log), middleware.Recovery(log))

	router.HandleFunc("/data", gantt.GetData).Methods(http.MethodGet)
	router.HandleFunc("/data/task", gantt.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/data/task/{id}", gantt.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/data/task/{id}", gantt.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/data/link", gantt.CreateLink).Methods(http.MethodPost)
	router.HandleFunc("/data/link/{id}", gantt.DeleteLink).Methods(http.MethodDelete)

	if staticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir))).Methods(http.MethodGet, http.MethodHead)
	}
}
