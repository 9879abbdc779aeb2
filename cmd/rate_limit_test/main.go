package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"chargecast/datasource"
	"chargecast/models"
)

// MockGenerationProvider is a simple mock that simulates latency and counts calls
type MockGenerationProvider struct {
	callCount int
	mutex     sync.Mutex
	latency   time.Duration
}

func NewMockGenerationProvider(latency time.Duration) *MockGenerationProvider {
	return &MockGenerationProvider{
		latency: latency,
	}
}

func (m *MockGenerationProvider) FetchGenerationMix(ctx context.Context, from, to time.Time) ([]models.GenerationSample, error) {
	m.mutex.Lock()
	m.callCount++
	currentCount := m.callCount
	m.mutex.Unlock()

	// Log request time
	now := time.Now()
	fmt.Printf("%s - Processing request #%d for [%s, %s)\n",
		now.Format("15:04:05.000"), currentCount,
		from.Format(time.RFC3339), to.Format(time.RFC3339))

	// Simulate work/latency
	select {
	case <-time.After(m.latency):
		// Continue processing
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return []models.GenerationSample{
		{
			From: from,
			To:   from.Add(30 * time.Minute),
			Mix: []models.FuelShare{
				{Fuel: "wind", Percentage: 40},
				{Fuel: "gas", Percentage: 60},
			},
		},
	}, nil
}

func (m *MockGenerationProvider) Name() string {
	return "MockProvider"
}

func (m *MockGenerationProvider) GetCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func main() {
	// Parse command-line flags
	requestsPerSecond := flag.Float64("rps", 1.0, "Rate limit in requests per second")
	burstSize := flag.Int("burst", 3, "Maximum burst size")
	totalRequests := flag.Int("requests", 10, "Total number of requests to make")
	concurrentRequests := flag.Int("concurrent", 5, "Number of concurrent requests")
	flag.Parse()

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Create a mock provider with 200ms response time
	mockProvider := NewMockGenerationProvider(200 * time.Millisecond)

	// Wrap with rate limiter
	rateLimitedProvider := datasource.NewRateLimitedProvider(mockProvider, *requestsPerSecond, *burstSize)

	fmt.Printf("Testing rate limiter with:\n")
	fmt.Printf("- Rate limit: %.2f requests/second\n", *requestsPerSecond)
	fmt.Printf("- Burst size: %d\n", *burstSize)
	fmt.Printf("- Total requests: %d\n", *totalRequests)
	fmt.Printf("- Concurrent workers: %d\n", *concurrentRequests)
	fmt.Println("Starting test...")

	// Record start time
	startTime := time.Now()

	// Create wait group for concurrent requests
	var wg sync.WaitGroup

	// Launch concurrent goroutines
	for i := 0; i < *concurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			// Calculate how many requests this worker should make
			requestsPerWorker := *totalRequests / *concurrentRequests
			if workerID < *totalRequests%*concurrentRequests {
				requestsPerWorker++
			}

			// Make requests
			for j := 0; j < requestsPerWorker; j++ {
				from := time.Now().UTC()
				before := time.Now()
				_, err := rateLimitedProvider.FetchGenerationMix(ctx, from, from.AddDate(0, 0, 2))
				elapsed := time.Since(before)

				if err != nil {
					log.Printf("Worker %d - Request %d failed: %v", workerID, j, err)
				} else {
					log.Printf("Worker %d - Request %d completed in %v", workerID, j, elapsed)
				}

				// Small sleep to prevent tight loop
				time.Sleep(10 * time.Millisecond)
			}
		}(i)
	}

	// Wait for all goroutines to finish
	wg.Wait()

	// Calculate total time
	totalTime := time.Since(startTime)
	actualRPS := float64(*totalRequests) / totalTime.Seconds()

	fmt.Println("\nTest completed!")
	fmt.Printf("Total time: %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Actual requests per second: %.2f\n", actualRPS)
	fmt.Printf("Total requests processed: %d\n", mockProvider.GetCallCount())

	expectedMinTime := float64(*totalRequests-*burstSize) / *requestsPerSecond
	if expectedMinTime < 0 {
		expectedMinTime = 0
	}

	fmt.Printf("Expected minimum time (theoretical): %.2f seconds\n", expectedMinTime)

	if actualRPS > *requestsPerSecond*1.5 && *totalRequests > *burstSize {
		fmt.Println("\n⚠️ WARNING: Actual RPS significantly higher than configured rate limit!")
		fmt.Println("Rate limiting may not be working as expected.")
	} else {
		fmt.Println("\n✅ Rate limiting appears to be working correctly.")
	}
}
