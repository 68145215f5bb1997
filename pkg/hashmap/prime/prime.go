package prime

// Is determines whether n is a prime number. It special cases 2 and 3,
// rejects anything below 2 along with the even numbers, and otherwise runs
// trial division by odd factors up to the square root of n.
func Is(n uint64) bool {
	if n == 2 || n == 3 {
		return true
	}
	if n < 2 || n%2 == 0 {
		return false
	}
	for factor := uint64(3); factor*factor <= n; factor += 2 {
		if n%factor == 0 {
			return false
		}
	}
	return true
}

// Next increments from n to find the closest prime number. An even n is
// first bumped to the next odd value, then candidates advance by two
// until one passes Is.
func Next(n uint64) uint64 {
	if n%2 == 0 {
		n++
	}
	for !Is(n) {
		n += 2
	}
	return n
}
