package openaddr

/*
	This hash map implementation uses a closed hashing (open addressing) technique with
	quadratic probing for resolving any hash collisions, and tombstones for handling
	removal. More information about these techniques can be found in the links provided
	below:
	01) https://en.wikipedia.org/wiki/Open_addressing
	02) https://en.wikipedia.org/wiki/Quadratic_probing
	03) https://en.wikipedia.org/wiki/Hash_table#Open_addressing
	04) https://www.cs.princeton.edu/courses/archive/fall05/cos226/lectures/hash.pdf
	The basic principal is:
	-----------------------
	1) Calculate the hash value and initial index of the entry to be inserted
	2) Probe the table with index = (initial + j^2) mod capacity for j = 1, 2, 3, ...
	3) A slot already holding the key (live or tombstoned) ends the probe at that slot
	4) Otherwise the first never-occupied slot ends the probe and is the insert point
	5) Removal only flags a slot as a tombstone so probe sequences passing through it
	   for other keys stay intact; a never-occupied slot is the only probe terminator
	The table capacity is always prime, and an insert at a load factor of 0.50 or
	above doubles the capacity first. Probe termination depends on keeping that
	eager resize in place: a sparse prime-sized table is what keeps the quadratic
	sequence from cycling before it finds the key or an empty slot.
*/
