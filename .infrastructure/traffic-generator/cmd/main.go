package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Генератор нагрузки для dispatch: райдеры шлют координаты, клиенты считают тариф.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_generator_requests_total",
		Help: "Запросы к dispatch по маршруту и статусу",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traffic_generator_request_duration_seconds",
		Help:    "Длительность запросов к dispatch",
		Buckets: []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"route"})
)

// центр Манилы, точки разбрасываются в радиусе ~5 км
const (
	baseLat = 14.5995
	baseLng = 120.9842
	spread  = 0.05
)

type coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type fareRequest struct {
	Pickup  coordinate `json:"pickup"`
	Dropoff coordinate `json:"dropoff"`
}

func randomPoint(rnd *rand.Rand) coordinate {
	return coordinate{
		Latitude:  baseLat + (rnd.Float64()-0.5)*spread,
		Longitude: baseLng + (rnd.Float64()-0.5)*spread,
	}
}

func send(client *http.Client, target, route, method, path, accountID, role string, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("marshal %s: %v", route, err)
		return
	}

	req, err := http.NewRequest(method, target+path, bytes.NewReader(payload))
	if err != nil {
		log.Printf("build %s: %v", route, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Account-ID", accountID)
	req.Header.Set("X-Account-Role", role)

	start := time.Now()
	resp, err := client.Do(req)
	requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(route, "error").Inc()
		return
	}
	_ = resp.Body.Close()
	requestsTotal.WithLabelValues(route, strconv.Itoa(resp.StatusCode)).Inc()
}

func simulateRider(client *http.Client, target string, id int, interval time.Duration) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
	accountID := fmt.Sprintf("load-rider-%d", id)

	send(client, target, "availability", http.MethodPut, "/api/riders/availability", accountID, "rider",
		map[string]bool{"is_available": true})

	for {
		send(client, target, "location", http.MethodPut, "/api/riders/location", accountID, "rider", randomPoint(rnd))
		time.Sleep(interval + time.Duration(rnd.Int63n(int64(interval))))
	}
}

func simulateCustomer(client *http.Client, target string, id int, interval time.Duration) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano() - int64(id)))
	accountID := fmt.Sprintf("load-customer-%d", id)

	for {
		send(client, target, "fare", http.MethodPost, "/api/rides/fare", accountID, "customer", fareRequest{
			Pickup:  randomPoint(rnd),
			Dropoff: randomPoint(rnd),
		})
		time.Sleep(interval + time.Duration(rnd.Int63n(int64(interval))))
	}
}

func main() {
	target := flag.String("target", "http://localhost:8080", "dispatch base url")
	riders := flag.Int("riders", 20, "simulated riders")
	customers := flag.Int("customers", 5, "simulated customers")
	interval := flag.Duration("interval", 3*time.Second, "base interval between requests of one client")
	metricsAddr := flag.String("metrics", ":2112", "metrics listen address")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	for i := 0; i < *riders; i++ {
		go simulateRider(client, *target, i, *interval)
	}
	for i := 0; i < *customers; i++ {
		go simulateCustomer(client, *target, i, *interval)
	}

	http.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              *metricsAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
