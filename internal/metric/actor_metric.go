/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package metric

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const actorAttribute = "actor.id"

// ActorMetric defines the actor instrumentation
type ActorMetric struct {
	// Specifies the total number of envelopes whose handler returned a value
	processedCount metric.Int64Counter
	// Specifies the total number of envelopes resolved with a failure
	failureCount metric.Int64Counter
	// Specifies the total number of envelopes cancelled at teardown
	cancelledCount metric.Int64Counter
	// Specifies the number of actors currently alive
	liveActors metric.Int64UpDownCounter
	// Specifies the handler processing duration in milliseconds
	handlerDuration metric.Int64Histogram
}

// NewActorMetric creates an instance of ActorMetric
func NewActorMetric(meter metric.Meter) (*ActorMetric, error) {
	actorMetric := new(ActorMetric)
	var err error

	if actorMetric.processedCount, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of envelopes processed successfully"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if actorMetric.failureCount, err = meter.Int64Counter(
		"actor_failure_count",
		metric.WithDescription("Total number of envelopes resolved with a failure"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failureCount instrument, %w", err)
	}

	if actorMetric.cancelledCount, err = meter.Int64Counter(
		"actor_cancelled_count",
		metric.WithDescription("Total number of envelopes cancelled before processing"),
	); err != nil {
		return nil, fmt.Errorf("failed to create cancelledCount instrument, %w", err)
	}

	if actorMetric.liveActors, err = meter.Int64UpDownCounter(
		"actor_live_count",
		metric.WithDescription("Number of actors currently alive"),
	); err != nil {
		return nil, fmt.Errorf("failed to create liveActors instrument, %w", err)
	}

	if actorMetric.handlerDuration, err = meter.Int64Histogram(
		"actor_handler_duration",
		metric.WithDescription("The latency of handler invocations in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create handlerDuration instrument, %w", err)
	}

	return actorMetric, nil
}

// RecordProcessed records a successfully handled envelope and its latency
func (x *ActorMetric) RecordProcessed(ctx context.Context, actorID string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String(actorAttribute, actorID))
	x.processedCount.Add(ctx, 1, attrs)
	x.handlerDuration.Record(ctx, elapsed.Milliseconds(), attrs)
}

// RecordFailure records an envelope resolved with a failure
func (x *ActorMetric) RecordFailure(ctx context.Context, actorID string) {
	x.failureCount.Add(ctx, 1, metric.WithAttributes(attribute.String(actorAttribute, actorID)))
}

// RecordCancelled records the number of envelopes cancelled at teardown
func (x *ActorMetric) RecordCancelled(ctx context.Context, actorID string, count int) {
	if count <= 0 {
		return
	}
	x.cancelledCount.Add(ctx, int64(count), metric.WithAttributes(attribute.String(actorAttribute, actorID)))
}

// ActorStarted increments the live actors gauge
func (x *ActorMetric) ActorStarted(ctx context.Context) {
	x.liveActors.Add(ctx, 1)
}

// ActorStopped decrements the live actors gauge
func (x *ActorMetric) ActorStopped(ctx context.Context) {
	x.liveActors.Add(ctx, -1)
}

// ProcessedCount returns the processed envelopes counter
func (x *ActorMetric) ProcessedCount() metric.Int64Counter {
	return x.processedCount
}

// FailureCount returns the failed envelopes counter
func (x *ActorMetric) FailureCount() metric.Int64Counter {
	return x.failureCount
}

// CancelledCount returns the cancelled envelopes counter
func (x *ActorMetric) CancelledCount() metric.Int64Counter {
	return x.cancelledCount
}

// LiveActors returns the live actors counter
func (x *ActorMetric) LiveActors() metric.Int64UpDownCounter {
	return x.liveActors
}

// HandlerDuration returns the handler latency histogram
func (x *ActorMetric) HandlerDuration() metric.Int64Histogram {
	return x.handlerDuration
}
