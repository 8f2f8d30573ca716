// Package geo holds the distance math used to match buyers, shops and orders.
package geo

import (
	"math"
	"strconv"
)

const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// CalculateDistance returns the great-circle distance in kilometres (Haversine).
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// Shop is anything that can deliver within a radius around optional coordinates.
type Shop interface {
	Coordinates() (lat, lng *float64)
	Radius() float64
}

// FilterNearbyShops keeps shops that have coordinates and whose delivery radius covers buyer.
func FilterNearbyShops[S Shop](buyer Point, shops []S) []S {
	out := make([]S, 0, len(shops))
	for _, s := range shops {
		lat, lng := s.Coordinates()
		if lat == nil || lng == nil {
			continue
		}
		if CalculateDistance(buyer.Lat, buyer.Lng, *lat, *lng) <= s.Radius() {
			out = append(out, s)
		}
	}
	return out
}

// Located is anything with optional coordinates, e.g. an order's delivery address.
type Located interface {
	Coordinates() (lat, lng *float64)
}

// Nearby pairs an item with its distance from the search origin.
type Nearby[T any] struct {
	Item     T
	Distance string
}

// FindNearbyOrders keeps orders within radius km of shop and annotates each with
// its distance formatted to two decimals.
func FindNearbyOrders[T Located](shop Point, radius float64, orders []T) []Nearby[T] {
	out := make([]Nearby[T], 0, len(orders))
	for _, o := range orders {
		lat, lng := o.Coordinates()
		if lat == nil || lng == nil {
			continue
		}
		d := CalculateDistance(shop.Lat, shop.Lng, *lat, *lng)
		if d <= radius {
			out = append(out, Nearby[T]{Item: o, Distance: strconv.FormatFloat(d, 'f', 2, 64)})
		}
	}
	return out
}
