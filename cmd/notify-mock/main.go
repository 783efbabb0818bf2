package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"
)

type scheduleNotification struct {
	JobID       string `json:"jobId"`
	JobTitle    string `json:"jobTitle"`
	CompanyID   string `json:"companyId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Assignments []struct {
		AssignmentID string `json:"assignmentId"`
		LabourerID   string `json:"labourerId"`
		SkillID      string `json:"skillId"`
		Date         string `json:"date"`
	} `json:"assignments"`
}

func main() {
	var (
		port    = flag.String("port", "9099", "port to listen on")
		apiKey  = flag.String("api-key", "", "required X-API-Key value, empty disables the check")
		verbose = flag.Bool("verbose", false, "log each received notification")
	)
	flag.Parse()

	var (
		mu       sync.Mutex
		received []scheduleNotification
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/notifications/schedules", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if *apiKey != "" && r.Header.Get("X-API-Key") != *apiKey {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		var payload scheduleNotification
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		mu.Lock()
		received = append(received, payload)
		count := len(received)
		mu.Unlock()

		if *verbose {
			log.Printf("schedule for job %s (%d assignments), %d total", payload.JobID, len(payload.Assignments), count)
		}
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(received); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":" + *port
	log.Printf("mock notification service listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
