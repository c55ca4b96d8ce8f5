package main

import (
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/format"
	"crew-route-service/internal/geo"
	"crew-route-service/internal/services"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"
)

// routeplan optimizes a route request file offline and prints the itinerary.
//
//	routeplan -in examples/optimize_request.json
//	routeplan -in - -json < request.json
func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, time.Now); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("routeplan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	in := fs.String("in", "-", "optimize request JSON file, - for stdin")
	asJSON := fs.Bool("json", false, "print the route as JSON instead of a table")
	zone := fs.String("tz", "", "IANA zone for clock times (default: the start time's offset)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("routeplan: %w", err)
	}

	var loc *time.Location
	if *zone != "" {
		l, err := time.LoadLocation(*zone)
		if err != nil {
			return fmt.Errorf("routeplan: load zone %q: %w", *zone, err)
		}
		loc = l
	}

	r := stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			return fmt.Errorf("routeplan: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req dto.OptimizeRouteRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("routeplan: decode request: %w", err)
	}

	algorithm, locations, opts, err := toRouteInput(req, now)
	if err != nil {
		return fmt.Errorf("routeplan: %w", err)
	}

	route, err := services.Optimize(algorithm, locations, opts)
	if err != nil {
		return fmt.Errorf("routeplan: %w", err)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.FromRouteResult(route))
	}

	return printItinerary(stdout, route, loc)
}

func toRouteInput(req dto.OptimizeRouteRequest, now func() time.Time) (domain.Algorithm, []domain.Location, services.RouteOptions, error) {
	if len(req.Locations) == 0 {
		return "", nil, services.RouteOptions{}, errors.New("request has no locations")
	}
	for i, l := range req.Locations {
		if l.Latitude == nil || l.Longitude == nil || !geo.ValidCoordinate(*l.Latitude, *l.Longitude) {
			return "", nil, services.RouteOptions{}, &domain.ParamError{
				Field:  fmt.Sprintf("locations[%d]", i),
				Reason: "invalid coordinates",
			}
		}
		if l.Duration < 0 {
			return "", nil, services.RouteOptions{}, &domain.ParamError{
				Field:  fmt.Sprintf("locations[%d].duration", i),
				Reason: "must be greater than or equal to 0",
			}
		}
	}

	algorithm, err := domain.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return "", nil, services.RouteOptions{}, err
	}

	startTime := now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	opts := services.DefaultRouteOptions(startTime)
	if req.StartLocationIndex != nil {
		opts.StartIndex = *req.StartLocationIndex
	}
	opts.EndIndex = opts.StartIndex
	if req.EndLocationIndex != nil {
		opts.EndIndex = *req.EndLocationIndex
	}
	if req.AverageSpeed != nil {
		opts.AverageSpeedKmh = *req.AverageSpeed
	}
	if req.MaxIterations != nil {
		opts.MaxIterations = *req.MaxIterations
	}

	if err := services.ValidateIndices(len(req.Locations), opts.StartIndex, opts.EndIndex); err != nil {
		return "", nil, services.RouteOptions{}, err
	}

	return algorithm, dto.ToDomainLocations(req.Locations), opts, nil
}

func printItinerary(w io.Writer, route *domain.RouteResult, loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tSTOP\tARRIVE\tDEPART\tLEG\tDRIVE")
	for i, p := range route.Points {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			name,
			format.Clock(p.ArrivalTime, loc),
			format.Clock(p.DepartureTime, loc),
			format.Distance(p.DistanceFromPrevious),
			format.Duration(p.TravelTimeFromPrevious),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal distance %s, driving %s, working day %s\n",
		format.Distance(route.TotalDistance),
		format.Duration(route.TotalTravelTime),
		format.Duration(route.TotalDuration),
	)
	return err
}
